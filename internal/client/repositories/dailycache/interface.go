// Package dailycache stores the single-row memo of the quote of the day.
package dailycache

import (
	"context"

	"github.com/pratish444/QuoteVault/internal/client/models"
)

type Repository interface {
	// Get returns the cached row regardless of date, or common.ErrNotFound.
	Get(ctx context.Context) (*models.DailyCache, error)
	// GetForDate returns the cached row only when it is for date, otherwise
	// common.ErrNotFound.
	GetForDate(ctx context.Context, date string) (*models.DailyCache, error)
	// Put replaces the single cache row.
	Put(ctx context.Context, c models.DailyCache) error
	Clear(ctx context.Context) error
}
