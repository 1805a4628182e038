// Package favorites stores which quotes each user has favorited.
package favorites

import (
	"context"

	"github.com/pratish444/QuoteVault/internal/client/models"
)

// Repository describes the local favorites link table. At most one row exists
// per (user, quote) pair.
type Repository interface {
	// Insert adds f, replacing any existing row for the same pair.
	Insert(ctx context.Context, f models.Favorite) error
	// Delete removes the pair; deleting an absent pair is not an error.
	Delete(ctx context.Context, userID, quoteID string) error
	Exists(ctx context.Context, userID, quoteID string) (bool, error)
	// Count returns the number of rows for the pair (0 or 1).
	Count(ctx context.Context, userID, quoteID string) (int, error)
	// ListQuotes returns the user's favorited quotes, most recently
	// favorited first, with IsFavorite set.
	ListQuotes(ctx context.Context, userID string) ([]models.Quote, error)
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)
}
