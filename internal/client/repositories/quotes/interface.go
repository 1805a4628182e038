package quotes

import (
	"context"

	"github.com/pratish444/QuoteVault/internal/client/models"
)

// Repository describes the local quote catalogue.
type Repository interface {
	// UpsertAll replaces every given quote wholesale in one transaction.
	// Re-applying the same batch leaves the table unchanged.
	UpsertAll(ctx context.Context, quotes []models.Quote) error

	// GetByID returns common.ErrNotFound when no quote has the id.
	GetByID(ctx context.Context, id string) (*models.Quote, error)

	// Page returns up to limit quotes, newest first, starting at offset.
	// An empty category or "All" disables the category filter.
	Page(ctx context.Context, category string, limit, offset int) ([]models.Quote, error)

	// Count returns the number of quotes matching category.
	Count(ctx context.Context, category string) (int, error)

	// Search matches q as a substring of either text or author.
	Search(ctx context.Context, q string) ([]models.Quote, error)

	// SearchByAuthor matches q as a substring of author.
	SearchByAuthor(ctx context.Context, q string) ([]models.Quote, error)

	// Random returns one uniformly chosen quote, or common.ErrNotFound when
	// the catalogue is empty.
	Random(ctx context.Context) (*models.Quote, error)

	// Categories returns the distinct categories present, sorted.
	Categories(ctx context.Context) ([]string, error)
}
