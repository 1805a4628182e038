// Package app wires the local store, the remote backend and the sync
// services into a long-running client.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pratish444/QuoteVault/internal/client/config"
	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/client/remote"
	"github.com/pratish444/QuoteVault/internal/client/repositories"
	"github.com/pratish444/QuoteVault/internal/client/scheduler"
	"github.com/pratish444/QuoteVault/internal/client/services"
	"github.com/pratish444/QuoteVault/internal/client/session"
	"github.com/pratish444/QuoteVault/internal/client/surface"
	"github.com/pratish444/QuoteVault/internal/common"
	"github.com/pratish444/QuoteVault/internal/logging"
	"github.com/pratish444/QuoteVault/internal/timex"
)

type App struct {
	config *config.Config
	log    logging.Logger
	clock  timex.Clock

	repos    *repositories.Repositories
	remote   remote.Client
	remoteDB *sql.DB
	auth     session.Authenticator
	after    scheduler.AfterFunc

	armMu   sync.Mutex
	armedAt [2]int

	Session  *session.Manager
	Sync     *services.SyncService
	Daily    *services.DailyService
	Prefs    *services.PreferencesService
	Quotes   *services.QuoteSource
	Widget   *surface.File
	Surfaces []surface.Surface
	Trigger  *scheduler.Daily
}

type Option func(*App)

func WithLogger(l logging.Logger) Option { return func(a *App) { a.log = l } }

func WithClock(c timex.Clock) Option { return func(a *App) { a.clock = c } }

// WithRemote replaces the backend selected by the config.
func WithRemote(rc remote.Client) Option { return func(a *App) { a.remote = rc } }

// WithAuthenticator replaces the token-based authenticator.
func WithAuthenticator(auth session.Authenticator) Option { return func(a *App) { a.auth = auth } }

// WithAfterFunc replaces the timer factory of the daily trigger.
func WithAfterFunc(f scheduler.AfterFunc) Option { return func(a *App) { a.after = f } }

// New opens the local store and the remote backend and builds the services.
func New(ctx context.Context, c *config.Config, opts ...Option) (*App, error) {
	a := &App{config: c, clock: timex.SystemClock{}}
	for _, o := range opts {
		o(a)
	}
	if a.log == nil {
		a.log = logging.NewJSON(os.Stderr, c.LogLevel)
	}

	repos, err := repositories.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		a.log.Error(ctx, "error initializing database", "dsn", c.DatabaseDSN, "err", err)
		return nil, err
	}
	a.repos = repos

	if a.remote == nil {
		if err := a.openRemote(ctx); err != nil {
			_ = repos.Close()
			return nil, err
		}
	}
	if a.auth == nil {
		a.auth = session.NewStaticAuthenticator(c.AccessToken)
	}

	svcOpts := []services.Option{
		services.WithLogger(a.log),
		services.WithClock(a.clock),
		services.WithRemoteTimeout(c.RemoteTimeout),
	}
	a.Sync = services.NewSyncService(a.remote, repos.Quotes, repos.Favorites, repos.Collections, svcOpts...)
	a.Daily = services.NewDailyService(a.remote, repos.Quotes, repos.DailyCache, svcOpts...)
	a.Prefs = services.NewPreferencesService(a.remote, repos.Metadata, svcOpts...)
	a.Quotes = services.NewQuoteSource(repos.Quotes, services.PagingConfig{
		PageSize:         c.PageSize,
		PrefetchDistance: services.DefaultPagingConfig().PrefetchDistance,
	})
	a.Session = session.NewManager(a.auth, a.Prefs, a.log, a.clock)

	a.Widget = surface.NewFile(c.WidgetPath, a.clock)
	a.Surfaces = []surface.Surface{surface.NewLog(a.log), a.Widget}

	trigOpts := []scheduler.Option{scheduler.WithClock(a.clock), scheduler.WithLogger(a.log)}
	if a.after != nil {
		trigOpts = append(trigOpts, scheduler.WithAfterFunc(a.after))
	}
	a.Trigger = scheduler.NewDaily(a.DailyJob, trigOpts...)

	return a, nil
}

func (a *App) openRemote(ctx context.Context) error {
	switch a.config.RemoteDriver {
	case config.DriverPostgres:
		db, err := remote.OpenPostgres(ctx, a.config.RemotePostgresDSN)
		if err != nil {
			a.log.Error(ctx, "error connecting remote database", "err", err)
			return err
		}
		if a.config.RemoteProvision {
			if err := remote.Provision(ctx, db); err != nil {
				_ = db.Close()
				return err
			}
		}
		a.remoteDB = db
		a.remote = remote.NewPostgresClient(db)
	case config.DriverHTTP:
		// the session manager is built later; resolve it on every request
		a.remote = remote.NewHTTPClient(a.config.RemoteURL, a.config.RemoteAPIKey, tokenFunc(func() string {
			if a.Session == nil {
				return ""
			}
			return a.Session.Token()
		}))
	default:
		return fmt.Errorf("unsupported remote driver: %q", a.config.RemoteDriver)
	}
	return nil
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

// Close releases the local store and the remote pool.
func (a *App) Close() error {
	a.Trigger.Cancel()
	var errs []error
	if a.remoteDB != nil {
		errs = append(errs, a.remoteDB.Close())
	}
	errs = append(errs, a.repos.Close())
	return errors.Join(errs...)
}

// Run refreshes the session, pulls the catalogue and preferences, arms the
// daily trigger and then resyncs every SyncInterval until ctx is done.
func (a *App) Run(ctx context.Context) error {
	users, cancel := a.Session.Subscribe()
	defer cancel()
	go a.watchSession(ctx, users)

	a.Resync(ctx)
	a.DailyJob(ctx)

	ticker := time.NewTicker(a.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Resync(ctx)
		case <-ctx.Done():
			a.Trigger.Cancel()
			a.log.Info(context.Background(), "client stopped")
			return nil
		}
	}
}

// Resync runs one full pass: session, catalogue, preferences, trigger.
// Failures are logged; local data stays usable.
func (a *App) Resync(ctx context.Context) {
	if _, err := a.Session.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "session refresh failed", "err", err)
	}
	if err := a.Sync.BulkPullItems(ctx); err != nil {
		a.log.Warn(ctx, "catalogue pull failed", "err", err)
	}

	prefs, err := a.Prefs.PullRemote(ctx)
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		a.log.Debug(ctx, "preferences pull skipped, signed out")
	case err != nil:
		a.log.Warn(ctx, "preferences pull failed", "err", err)
	}
	if err != nil {
		if prefs, err = a.Prefs.Local(ctx); err != nil {
			a.log.Error(ctx, "reading local preferences failed", "err", err)
			return
		}
	}

	a.ApplyNotifications(ctx, prefs.NotificationsEnabled, prefs.NotificationHour, prefs.NotificationMinute)
}

// ApplyNotifications arms the daily trigger when enabled and disarms it
// otherwise. An already armed trigger at the same time is left alone.
func (a *App) ApplyNotifications(ctx context.Context, enabled bool, hour, minute int) {
	a.armMu.Lock()
	defer a.armMu.Unlock()

	if !enabled {
		if a.Trigger.Armed() {
			a.log.Info(ctx, "daily trigger disarmed")
		}
		a.Trigger.Cancel()
		return
	}
	at := [2]int{hour, minute}
	if a.Trigger.Armed() && a.armedAt == at {
		return
	}
	if err := a.Trigger.Arm(ctx, hour, minute); err != nil {
		a.log.Warn(ctx, "arming daily trigger failed", "err", err)
		return
	}
	a.armedAt = at
}

// DailyJob delivers today's quote to every surface. Delivery errors are
// logged and do not stop the remaining surfaces.
func (a *App) DailyJob(ctx context.Context) {
	q := a.Daily.QuoteOfTheDay(ctx)
	for _, s := range a.Surfaces {
		if err := s.Deliver(ctx, q.Text, q.Author); err != nil {
			a.log.Warn(ctx, "quote delivery failed", "quote_id", q.ID, "err", err)
		}
	}
}

func (a *App) watchSession(ctx context.Context, users <-chan *models.User) {
	for {
		select {
		case u, ok := <-users:
			if !ok {
				return
			}
			if u == nil {
				a.log.Info(ctx, "signed out")
				continue
			}
			a.log.Info(ctx, "signed in", "user_id", u.ID, "email", u.Email)
		case <-ctx.Done():
			return
		}
	}
}
