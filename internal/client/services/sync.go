package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pratish444/QuoteVault/internal/client/decode"
	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/client/remote"
	"github.com/pratish444/QuoteVault/internal/client/repositories/collections"
	"github.com/pratish444/QuoteVault/internal/client/repositories/favorites"
	"github.com/pratish444/QuoteVault/internal/client/repositories/quotes"
	"github.com/pratish444/QuoteVault/internal/common"
)

// SyncService owns the local-first write paths. The local store is the
// source of truth for what the user did; the remote mirror is best effort
// and a later pull reconciles drift.
type SyncService struct {
	remote      remote.Client
	quotes      quotes.Repository
	favorites   favorites.Repository
	collections collections.Repository
	opts        options
}

func NewSyncService(rc remote.Client, q quotes.Repository, f favorites.Repository, c collections.Repository, opts ...Option) *SyncService {
	return &SyncService{
		remote:      rc,
		quotes:      q,
		favorites:   f,
		collections: c,
		opts:        newOptions(opts),
	}
}

// BulkPullItems fetches the whole remote quote set and upserts it locally in
// one transaction. A remote failure aborts before any local write. Rows
// without an id are skipped. Local-only quotes are never deleted.
func (s *SyncService) BulkPullItems(ctx context.Context) error {
	rctx, cancel := context.WithTimeout(ctx, s.opts.remoteTimeout)
	rows, err := s.remote.Select(rctx, remote.TableQuotes, remote.All)
	cancel()
	if err != nil {
		remoteFailuresTotal.WithLabelValues("pull_quotes").Inc()
		s.opts.log.Warn(ctx, "quote pull failed", "table", remote.TableQuotes, "op", "select", "err", err)
		return fmt.Errorf("pull quotes: %w", err)
	}

	items := make([]models.Quote, 0, len(rows))
	for i, row := range rows {
		q, ok := decode.Quote(row)
		if !ok {
			s.opts.log.Warn(ctx, "skipping remote quote without id", "index", i)
			continue
		}
		items = append(items, q)
	}

	if err := s.quotes.UpsertAll(ctx, items); err != nil {
		return fmt.Errorf("store pulled quotes: %w", err)
	}
	pulledQuotesTotal.Add(float64(len(items)))
	s.opts.log.Info(ctx, "quotes pulled", "count", len(items), "skipped", len(rows)-len(items))
	return nil
}

// Favorite marks quoteID as favorited by userID locally, then mirrors the
// row remotely.
func (s *SyncService) Favorite(ctx context.Context, userID, quoteID string) WriteResult {
	if userID == "" {
		return localFailure(common.ErrNotAuthenticated)
	}
	fav := models.Favorite{
		ID:        s.opts.newID(),
		UserID:    userID,
		QuoteID:   quoteID,
		CreatedAt: s.opts.clock.Now(),
	}
	if err := s.favorites.Insert(ctx, fav); err != nil {
		return localFailure(err)
	}

	return WriteResult{Remote: s.mirror(ctx, "favorite", remote.TableFavorites, func(ctx context.Context) error {
		return s.remote.Insert(ctx, remote.TableFavorites, remote.Row{
			"id":       fav.ID,
			"user_id":  userID,
			"quote_id": quoteID,
		})
	})}
}

// Unfavorite removes the favorite locally, then remotely.
func (s *SyncService) Unfavorite(ctx context.Context, userID, quoteID string) WriteResult {
	if userID == "" {
		return localFailure(common.ErrNotAuthenticated)
	}
	if err := s.favorites.Delete(ctx, userID, quoteID); err != nil {
		return localFailure(err)
	}

	return WriteResult{Remote: s.mirror(ctx, "unfavorite", remote.TableFavorites, func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.TableFavorites, remote.Eq("user_id", userID).Eq("quote_id", quoteID))
	})}
}

// Toggle flips the favorite state and returns the resulting state. When the
// local phase fails the previous state is returned.
func (s *SyncService) Toggle(ctx context.Context, userID, quoteID string) (bool, WriteResult) {
	exists, err := s.favorites.Exists(ctx, userID, quoteID)
	if err != nil {
		return false, localFailure(err)
	}

	var res WriteResult
	if exists {
		res = s.Unfavorite(ctx, userID, quoteID)
	} else {
		res = s.Favorite(ctx, userID, quoteID)
	}
	if !res.LocalCommitted() {
		return exists, res
	}
	return !exists, res
}

func (s *SyncService) IsFavorite(ctx context.Context, userID, quoteID string) (bool, error) {
	return s.favorites.Exists(ctx, userID, quoteID)
}

// Favorites lists the user's favorited quotes, most recent first.
func (s *SyncService) Favorites(ctx context.Context, userID string) ([]models.Quote, error) {
	return s.favorites.ListQuotes(ctx, userID)
}

// CreateCollection validates in, stores the new collection and mirrors it.
func (s *SyncService) CreateCollection(ctx context.Context, userID string, in models.CollectionInput) (models.Collection, WriteResult) {
	if userID == "" {
		return models.Collection{}, localFailure(common.ErrNotAuthenticated)
	}
	in, err := normalizeCollection(in)
	if err != nil {
		return models.Collection{}, localFailure(err)
	}

	c := models.Collection{
		ID:          s.opts.newID(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		CreatedAt:   s.opts.clock.Now(),
	}
	if err := s.collections.Insert(ctx, c); err != nil {
		return models.Collection{}, localFailure(err)
	}

	row := collectionRow(c)
	row["id"] = c.ID
	row["user_id"] = c.UserID
	return c, WriteResult{Remote: s.mirror(ctx, "create_collection", remote.TableCollections, func(ctx context.Context) error {
		return s.remote.Insert(ctx, remote.TableCollections, row)
	})}
}

// UpdateCollection rewrites the editable fields of c.
func (s *SyncService) UpdateCollection(ctx context.Context, c models.Collection) WriteResult {
	in, err := normalizeCollection(models.CollectionInput{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
	})
	if err != nil {
		return localFailure(err)
	}
	c.Name, c.Description, c.Color, c.Icon = in.Name, in.Description, in.Color, in.Icon

	if err := s.collections.Update(ctx, c); err != nil {
		return localFailure(err)
	}

	return WriteResult{Remote: s.mirror(ctx, "update_collection", remote.TableCollections, func(ctx context.Context) error {
		return s.remote.Update(ctx, remote.TableCollections, collectionRow(c), remote.Eq("id", c.ID))
	})}
}

// DeleteCollection removes the collection and its membership rows locally,
// then remotely (membership first). Deleting an unknown collection succeeds.
func (s *SyncService) DeleteCollection(ctx context.Context, id string) WriteResult {
	if err := s.collections.Delete(ctx, id); err != nil {
		return localFailure(err)
	}

	return WriteResult{Remote: s.mirror(ctx, "delete_collection", remote.TableCollections, func(ctx context.Context) error {
		if err := s.remote.Delete(ctx, remote.TableCollectionQuotes, remote.Eq("collection_id", id)); err != nil {
			return err
		}
		return s.remote.Delete(ctx, remote.TableCollections, remote.Eq("id", id))
	})}
}

func (s *SyncService) AddQuoteToCollection(ctx context.Context, collectionID, quoteID string) WriteResult {
	cq := models.CollectionQuote{
		CollectionID: collectionID,
		QuoteID:      quoteID,
		AddedAt:      s.opts.clock.Now(),
	}
	if err := s.collections.AddQuote(ctx, cq); err != nil {
		return localFailure(err)
	}

	return WriteResult{Remote: s.mirror(ctx, "add_to_collection", remote.TableCollectionQuotes, func(ctx context.Context) error {
		return s.remote.Insert(ctx, remote.TableCollectionQuotes, remote.Row{
			"collection_id": collectionID,
			"quote_id":      quoteID,
		})
	})}
}

func (s *SyncService) RemoveQuoteFromCollection(ctx context.Context, collectionID, quoteID string) WriteResult {
	if err := s.collections.RemoveQuote(ctx, collectionID, quoteID); err != nil {
		return localFailure(err)
	}

	return WriteResult{Remote: s.mirror(ctx, "remove_from_collection", remote.TableCollectionQuotes, func(ctx context.Context) error {
		return s.remote.Delete(ctx, remote.TableCollectionQuotes,
			remote.Eq("collection_id", collectionID).Eq("quote_id", quoteID))
	})}
}

// Collections lists the user's collections with quote counts.
func (s *SyncService) Collections(ctx context.Context, userID string) ([]models.Collection, error) {
	return s.collections.ListByUser(ctx, userID)
}

// CollectionQuotes lists a collection's quotes, most recently added first.
func (s *SyncService) CollectionQuotes(ctx context.Context, collectionID string) ([]models.Quote, error) {
	return s.collections.ListQuotes(ctx, collectionID)
}

// mirror runs one remote write under the remote timeout. Failures are
// logged and counted, then returned for the caller's WriteResult.
func (s *SyncService) mirror(ctx context.Context, op, table string, fn func(ctx context.Context) error) error {
	rctx, cancel := context.WithTimeout(ctx, s.opts.remoteTimeout)
	defer cancel()

	if err := fn(rctx); err != nil {
		remoteFailuresTotal.WithLabelValues(op).Inc()
		s.opts.log.Warn(ctx, "remote write failed", "table", table, "op", op, "err", err)
		return err
	}
	return nil
}

func normalizeCollection(in models.CollectionInput) (models.CollectionInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Color = strings.TrimSpace(in.Color)
	in.Icon = strings.TrimSpace(in.Icon)

	if in.Name == "" {
		return in, fmt.Errorf("%w: collection name is empty", common.ErrInvalidInput)
	}
	if in.Color == "" {
		in.Color = models.DefaultCollectionColor
	}
	if in.Icon == "" {
		in.Icon = models.DefaultCollectionIcon
	}
	if !models.IsCollectionIcon(in.Icon) {
		return in, fmt.Errorf("%w: unknown collection icon %q", common.ErrInvalidInput, in.Icon)
	}
	return in, nil
}

// collectionRow holds the remotely editable collection fields.
func collectionRow(c models.Collection) remote.Row {
	var desc any
	if c.Description != "" {
		desc = c.Description
	}
	return remote.Row{
		"name":        c.Name,
		"description": desc,
		"color":       c.Color,
		"icon":        c.Icon,
	}
}
