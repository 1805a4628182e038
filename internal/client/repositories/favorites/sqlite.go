package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, f models.Favorite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_favorites (id, user_id, quote_id, created_at)
		VALUES (?, ?, ?, ?)
	`, f.ID, f.UserID, f.QuoteID, dbx.Millis(f.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert favorite %s/%s: %w", f.UserID, f.QuoteID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID, quoteID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_favorites WHERE user_id = ? AND quote_id = ?`, userID, quoteID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite %s/%s: %w", userID, quoteID, err)
	}
	return nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID, quoteID string) (bool, error) {
	n, err := r.Count(ctx, userID, quoteID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Count(ctx context.Context, userID, quoteID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_favorites WHERE user_id = ? AND quote_id = ?`,
		userID, quoteID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorite %s/%s: %w", userID, quoteID, err)
	}
	return n, nil
}

func (r *SQLiteRepository) ListQuotes(ctx context.Context, userID string) ([]models.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT q.id, q.text, q.author, q.category, q.source, q.created_at
		FROM quotes q
		JOIN user_favorites f ON f.quote_id = q.id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, q.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorite quotes: %w", err)
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
			return nil, fmt.Errorf("failed to scan favorite quote: %w", err)
		}
		q.Source = source.String
		q.CreatedAt = dbx.FromMillis(created)
		q.IsFavorite = true
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite quotes: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, quote_id, created_at FROM user_favorites
		WHERE user_id = ? ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
	}
	defer rows.Close()

	result := []models.Favorite{}
	for rows.Next() {
		var (
			f       models.Favorite
			created int64
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.QuoteID, &created); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.CreatedAt = dbx.FromMillis(created)
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return result, nil
}
