package services

import (
	"context"
	"errors"

	"github.com/pratish444/QuoteVault/internal/client/decode"
	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/client/remote"
	"github.com/pratish444/QuoteVault/internal/client/repositories/dailycache"
	"github.com/pratish444/QuoteVault/internal/client/repositories/quotes"
	"github.com/pratish444/QuoteVault/internal/common"
	"github.com/pratish444/QuoteVault/internal/logging"
)

// DailyService resolves the quote of the day, degrading from the durable
// cache to the remote pick, then a random local quote, then the built-in
// fallback. It never fails.
type DailyService struct {
	remote remote.Client
	quotes quotes.Repository
	cache  dailycache.Repository
	opts   options
}

// NewDailyService returns a resolver. rc may be nil to skip the remote step.
func NewDailyService(rc remote.Client, q quotes.Repository, cache dailycache.Repository, opts ...Option) *DailyService {
	return &DailyService{remote: rc, quotes: q, cache: cache, opts: newOptions(opts)}
}

// QuoteOfTheDay returns today's quote.
func (s *DailyService) QuoteOfTheDay(ctx context.Context) models.Quote {
	q, _ := s.Resolve(ctx)
	return q
}

// Resolve returns today's quote and where it came from. Repeated calls on
// the same local date return the same quote, across restarts, once a cache
// row has been written.
func (s *DailyService) Resolve(ctx context.Context) (models.Quote, models.DailySource) {
	today := s.opts.clock.Now().Format(common.DateLayout)
	log := s.opts.log.With("date", today)

	cached, err := s.cache.GetForDate(ctx, today)
	switch {
	case err == nil:
		return s.resolved(ctx, log, cached.Quote(), models.DailySourceCache)
	case !errors.Is(err, common.ErrNotFound):
		log.Warn(ctx, "daily cache read failed", "err", err)
	}

	if q, ok := s.remotePick(ctx, today); ok {
		s.store(ctx, today, q)
		return s.resolved(ctx, log, q, models.DailySourceRemote)
	}

	q, err := s.quotes.Random(ctx)
	switch {
	case err == nil:
		s.store(ctx, today, *q)
		return s.resolved(ctx, log, *q, models.DailySourceRandom)
	case !errors.Is(err, common.ErrNotFound):
		log.Warn(ctx, "random quote read failed", "err", err)
	}

	return s.resolved(ctx, log, models.DefaultQuote(), models.DailySourceFallback)
}

// Invalidate drops the cached pick so the next Resolve recomputes it.
func (s *DailyService) Invalidate(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// remotePick looks up today's remote assignment and resolves it against the
// local catalogue only. Any failure means no usable pick.
func (s *DailyService) remotePick(ctx context.Context, today string) (models.Quote, bool) {
	if s.remote == nil {
		return models.Quote{}, false
	}

	rctx, cancel := context.WithTimeout(ctx, s.opts.remoteTimeout)
	rows, err := s.remote.Select(rctx, remote.TableDailyQuotes, remote.Eq("date", today).WithLimit(1))
	cancel()
	if err != nil {
		remoteFailuresTotal.WithLabelValues("daily_pick").Inc()
		level := s.opts.log.Warn
		if errors.Is(err, remote.ErrSchemaAbsent) {
			level = s.opts.log.Info
		}
		level(ctx, "remote daily pick unavailable", "table", remote.TableDailyQuotes, "op", "select", "err", err)
		return models.Quote{}, false
	}

	for _, row := range rows {
		pick, ok := decode.DailyPick(row)
		if !ok {
			continue
		}
		q, err := s.quotes.GetByID(ctx, pick.QuoteID)
		if err != nil {
			s.opts.log.Debug(ctx, "remote daily pick not available locally", "quote_id", pick.QuoteID, "err", err)
			return models.Quote{}, false
		}
		return *q, true
	}
	return models.Quote{}, false
}

func (s *DailyService) store(ctx context.Context, today string, q models.Quote) {
	if err := s.cache.Put(ctx, models.NewDailyCache(today, q)); err != nil {
		s.opts.log.Warn(ctx, "daily cache write failed", "date", today, "err", err)
	}
}

func (s *DailyService) resolved(ctx context.Context, log logging.Logger, q models.Quote, src models.DailySource) (models.Quote, models.DailySource) {
	dailyResolutionsTotal.WithLabelValues(string(src)).Inc()
	log.Debug(ctx, "quote of the day resolved", "source", string(src), "quote_id", q.ID)
	return q, src
}
