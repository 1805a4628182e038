package dailycache

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

func (r *SQLiteRepository) Get(ctx context.Context) (*models.DailyCache, error) {
	var (
		c      models.DailyCache
		source sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT date, quote_id, quote_text, quote_author, quote_category, source
		FROM quote_cache WHERE id = ?
	`, models.DailyCacheID).Scan(&c.Date, &c.QuoteID, &c.Text, &c.Author, &c.Category, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily cache: %w", err)
	}
	c.Source = source.String
	return &c, nil
}

func (r *SQLiteRepository) GetForDate(ctx context.Context, date string) (*models.DailyCache, error) {
	c, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c.Date != date {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, c models.DailyCache) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO quote_cache (id, date, quote_id, quote_text, quote_author, quote_category, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, models.DailyCacheID, c.Date, c.QuoteID, c.Text, c.Author, c.Category, dbx.NullString(c.Source))
	if err != nil {
		return fmt.Errorf("failed to put daily cache for %s: %w", c.Date, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quote_cache`); err != nil {
		return fmt.Errorf("failed to clear daily cache: %w", err)
	}
	return nil
}
