// Package services implements the local-first sync engine of the QuoteVault
// client: optimistic favorite and collection writes mirrored to the remote
// backend, bulk quote pulls, the paged quote source, the quote-of-the-day
// resolver and preference sync.
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/pratish444/QuoteVault/internal/logging"
	"github.com/pratish444/QuoteVault/internal/timex"
)

// DefaultRemoteTimeout bounds every remote call a service makes.
const DefaultRemoteTimeout = 10 * time.Second

type options struct {
	log           logging.Logger
	clock         timex.Clock
	newID         func() string
	remoteTimeout time.Duration
}

// Option configures a service.
type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func WithClock(c timex.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithIDGenerator replaces uuid.NewString for new record ids.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithRemoteTimeout sets the per-call remote timeout; d <= 0 keeps the default.
func WithRemoteTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.remoteTimeout = d
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		log:           logging.Nop(),
		clock:         timex.SystemClock{},
		newID:         uuid.NewString,
		remoteTimeout: DefaultRemoteTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
