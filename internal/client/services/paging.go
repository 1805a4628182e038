package services

import (
	"context"
	"errors"
	"io"
	"iter"
	"sync"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/client/repositories/quotes"
	"github.com/pratish444/QuoteVault/internal/common"
)

// PagingConfig sizes the paged quote source.
type PagingConfig struct {
	PageSize int
	// PrefetchDistance is how close (in items) the consumer may get to the
	// end of the delivered window before the following page is loaded ahead.
	PrefetchDistance int
}

func DefaultPagingConfig() PagingConfig {
	return PagingConfig{PageSize: common.DefaultPageSize, PrefetchDistance: 5}
}

// QuoteSource reads the local quote catalogue in pages. It never touches the
// network.
type QuoteSource struct {
	repo quotes.Repository
	cfg  PagingConfig
}

func NewQuoteSource(repo quotes.Repository, cfg PagingConfig) *QuoteSource {
	if cfg.PageSize <= 0 {
		cfg.PageSize = common.DefaultPageSize
	}
	if cfg.PrefetchDistance < 0 {
		cfg.PrefetchDistance = 0
	}
	return &QuoteSource{repo: repo, cfg: cfg}
}

// Pager returns a new pager over category ("" or "All" for every quote),
// newest first.
func (s *QuoteSource) Pager(category string) *Pager {
	return &Pager{repo: s.repo, category: category, cfg: s.cfg}
}

// All yields every page of category in order.
func (s *QuoteSource) All(ctx context.Context, category string) iter.Seq2[[]models.Quote, error] {
	return func(yield func([]models.Quote, error) bool) {
		p := s.Pager(category)
		for {
			page, err := p.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// Items yields every quote of category one at a time, reporting the read
// position to the pager so the following page is prefetched.
func (s *QuoteSource) Items(ctx context.Context, category string) iter.Seq2[models.Quote, error] {
	return func(yield func(models.Quote, error) bool) {
		p := s.Pager(category)
		index := 0
		for {
			page, err := p.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(models.Quote{}, err)
				return
			}
			for _, q := range page {
				if err := p.Hint(ctx, index); err != nil {
					yield(models.Quote{}, err)
					return
				}
				index++
				if !yield(q, nil) {
					return
				}
			}
		}
	}
}

func (s *QuoteSource) Search(ctx context.Context, q string) ([]models.Quote, error) {
	return s.repo.Search(ctx, q)
}

func (s *QuoteSource) SearchByAuthor(ctx context.Context, author string) ([]models.Quote, error) {
	return s.repo.SearchByAuthor(ctx, author)
}

// Categories returns "All" followed by the categories present locally. An
// empty store yields the built-in category list.
func (s *QuoteSource) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return append([]string(nil), models.Categories...), nil
	}
	return append([]string{models.CategoryAll}, cats...), nil
}

// Pager is a lazy, restartable page cursor. Each page is read from the store
// when needed, so a read after a local write sees the write. Pager is safe
// for concurrent use.
type Pager struct {
	repo     quotes.Repository
	category string
	cfg      PagingConfig

	mu        sync.Mutex
	offset    int
	delivered int
	ahead     []models.Quote
	hasAhead  bool
	done      bool
}

// Next returns the next page, or io.EOF after the last one.
func (p *Pager) Next(ctx context.Context) ([]models.Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var page []models.Quote
	if p.hasAhead {
		page, p.ahead, p.hasAhead = p.ahead, nil, false
	} else {
		if p.done {
			return nil, io.EOF
		}
		var err error
		if page, err = p.load(ctx); err != nil {
			return nil, err
		}
	}

	if len(page) == 0 {
		p.done = true
		return nil, io.EOF
	}
	p.delivered += len(page)
	return page, nil
}

// Hint tells the pager the consumer has reached item index (0-based over
// everything delivered so far). Within PrefetchDistance of the end of the
// delivered window the following page is loaded into a one-page buffer.
func (p *Pager) Hint(ctx context.Context, index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hasAhead || p.done || p.delivered == 0 {
		return nil
	}
	if index < p.delivered-1-p.cfg.PrefetchDistance {
		return nil
	}
	page, err := p.load(ctx)
	if err != nil {
		return err
	}
	p.ahead, p.hasAhead = page, true
	return nil
}

// Prefetched reports whether a page is waiting in the buffer.
func (p *Pager) Prefetched() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasAhead
}

// Reset restarts the pager from the first page and drops the buffer.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offset, p.delivered = 0, 0
	p.ahead, p.hasAhead, p.done = nil, false, false
}

// load reads the page at offset; the caller holds mu.
func (p *Pager) load(ctx context.Context) ([]models.Quote, error) {
	page, err := p.repo.Page(ctx, p.category, p.cfg.PageSize, p.offset)
	if err != nil {
		return nil, err
	}
	p.offset += len(page)
	if len(page) < p.cfg.PageSize {
		p.done = true
	}
	return page, nil
}
