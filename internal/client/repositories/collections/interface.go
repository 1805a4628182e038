// Package collections stores user collections and their quote membership.
package collections

import (
	"context"

	"github.com/pratish444/QuoteVault/internal/client/models"
)

type Repository interface {
	Insert(ctx context.Context, c models.Collection) error
	// Update rewrites the editable fields (name, description, color, icon).
	// It returns common.ErrNotFound when no collection has c.ID.
	Update(ctx context.Context, c models.Collection) error
	// Delete removes the collection and all of its membership rows in one
	// transaction. Deleting an absent collection is not an error.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	// ListByUser returns the user's collections, newest first, with
	// QuoteCount filled in.
	ListByUser(ctx context.Context, userID string) ([]models.Collection, error)

	// AddQuote links a quote; re-adding an existing pair replaces it.
	AddQuote(ctx context.Context, cq models.CollectionQuote) error
	RemoveQuote(ctx context.Context, collectionID, quoteID string) error
	// ListQuotes returns member quotes, most recently added first.
	ListQuotes(ctx context.Context, collectionID string) ([]models.Quote, error)
	CountQuotes(ctx context.Context, collectionID string) (int, error)
}
