package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/common"
	"github.com/pratish444/QuoteVault/internal/dbx"
)

const columns = `id, text, author, category, source, created_at`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) UpsertAll(ctx context.Context, quotes []models.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	query := `INSERT INTO quotes (` + columns + `)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET text = excluded.text,
				author = excluded.author,
				category = excluded.category,
				source = excluded.source,
				created_at = excluded.created_at`

	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, q := range quotes {
			_, err := tx.ExecContext(ctx, query,
				q.ID, q.Text, q.Author, q.Category, dbx.NullString(q.Source), dbx.Millis(q.CreatedAt))
			if err != nil {
				return fmt.Errorf("failed to upsert quote %s: %w", q.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote %s: %w", id, err)
	}
	return q, nil
}

func (r *SQLiteRepository) Page(ctx context.Context, category string, limit, offset int) ([]models.Quote, error) {
	if limit <= 0 {
		return nil, nil
	}
	if offset < 0 {
		offset = 0
	}
	var (
		rows *sql.Rows
		err  error
	)
	if isAll(category) {
		rows, err = r.db.QueryContext(ctx, `SELECT `+columns+` FROM quotes
			ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+columns+` FROM quotes WHERE category = ?
			ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, category, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select quotes page: %w", err)
	}
	return collect(rows)
}

func (r *SQLiteRepository) Count(ctx context.Context, category string) (int, error) {
	var (
		n   int
		err error
	)
	if isAll(category) {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes WHERE category = ?`, category).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.Quote, error) {
	pattern := likePattern(q)
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM quotes
		WHERE text LIKE ? ESCAPE '\' OR author LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search quotes: %w", err)
	}
	return collect(rows)
}

func (r *SQLiteRepository) SearchByAuthor(ctx context.Context, q string) ([]models.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM quotes
		WHERE author LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC`, likePattern(q))
	if err != nil {
		return nil, fmt.Errorf("failed to search quotes by author: %w", err)
	}
	return collect(rows)
}

func (r *SQLiteRepository) Random(ctx context.Context) (*models.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM quotes ORDER BY RANDOM() LIMIT 1`)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random quote: %w", err)
	}
	return q, nil
}

func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM quotes ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(s scanner) (*models.Quote, error) {
	var (
		q       models.Quote
		source  sql.NullString
		created int64
	)
	if err := s.Scan(&q.ID, &q.Text, &q.Author, &q.Category, &source, &created); err != nil {
		return nil, err
	}
	q.Source = source.String
	q.CreatedAt = dbx.FromMillis(created)
	return &q, nil
}

func collect(rows *sql.Rows) ([]models.Quote, error) {
	defer rows.Close()

	result := []models.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		result = append(result, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	return result, nil
}

func isAll(category string) bool {
	return category == "" || category == models.CategoryAll
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
