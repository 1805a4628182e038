package collections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/common"
	"github.com/pratish444/QuoteVault/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, c models.Collection) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO collections (id, user_id, name, description, color, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id,
			name = excluded.name,
			description = excluded.description,
			color = excluded.color,
			icon = excluded.icon,
			created_at = excluded.created_at
	`, c.ID, c.UserID, c.Name, dbx.NullString(c.Description), c.Color, c.Icon, dbx.Millis(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert collection %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, c models.Collection) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE collections SET name = ?, description = ?, color = ?, icon = ?
		WHERE id = ?
	`, c.Name, dbx.NullString(c.Description), c.Color, c.Icon, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update collection %s: %w", c.ID, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collection_quotes WHERE collection_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete collection %s members: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete collection %s: %w", id, err)
		}
		return nil
	})
}

const selectWithCount = `
	SELECT c.id, c.user_id, c.name, c.description, c.color, c.icon, c.created_at,
		(SELECT COUNT(*) FROM collection_quotes cq WHERE cq.collection_id = c.id)
	FROM collections c`

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	row := r.db.QueryRowContext(ctx, selectWithCount+` WHERE c.id = ?`, id)
	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, selectWithCount+`
		WHERE c.user_id = ? ORDER BY c.created_at DESC, c.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select collections: %w", err)
	}
	defer rows.Close()

	result := []models.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) AddQuote(ctx context.Context, cq models.CollectionQuote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO collection_quotes (collection_id, quote_id, added_at)
		VALUES (?, ?, ?)
	`, cq.CollectionID, cq.QuoteID, dbx.Millis(cq.AddedAt))
	if err != nil {
		return fmt.Errorf("failed to add quote %s to collection %s: %w", cq.QuoteID, cq.CollectionID, err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveQuote(ctx context.Context, collectionID, quoteID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM collection_quotes WHERE collection_id = ? AND quote_id = ?`,
		collectionID, quoteID)
	if err != nil {
		return fmt.Errorf("failed to remove quote %s from collection %s: %w", quoteID, collectionID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListQuotes(ctx context.Context, collectionID string) ([]models.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT q.id, q.text, q.author, q.category, q.source, q.created_at
		FROM quotes q
		JOIN collection_quotes cq ON cq.quote_id = q.id
		WHERE cq.collection_id = ?
		ORDER BY cq.added_at DESC, q.id DESC
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to select collection quotes: %w", err)
	}
	defer rows.Close()

	result := []models.Quote{}
	for rows.Next() {
		var (
			q       models.Quote
			source  sql.NullString
			created int64
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.Category, &source, &created); err != nil {
			return nil, fmt.Errorf("failed to scan collection quote: %w", err)
		}
		q.Source = source.String
		q.CreatedAt = dbx.FromMillis(created)
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection quotes: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) CountQuotes(ctx context.Context, collectionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collection_quotes WHERE collection_id = ?`,
		collectionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count collection %s quotes: %w", collectionID, err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCollection(s scanner) (*models.Collection, error) {
	var (
		c       models.Collection
		desc    sql.NullString
		created int64
	)
	if err := s.Scan(&c.ID, &c.UserID, &c.Name, &desc, &c.Color, &c.Icon, &created, &c.QuoteCount); err != nil {
		return nil, err
	}
	c.Description = desc.String
	c.CreatedAt = dbx.FromMillis(created)
	return &c, nil
}
