// Package repositories opens the on-device SQLite store and bundles the
// per-record-kind repositories on top of it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pratish444/QuoteVault/internal/client/migrations"
	"github.com/pratish444/QuoteVault/internal/client/repositories/collections"
	"github.com/pratish444/QuoteVault/internal/client/repositories/dailycache"
	"github.com/pratish444/QuoteVault/internal/client/repositories/favorites"
	"github.com/pratish444/QuoteVault/internal/client/repositories/metadata"
	"github.com/pratish444/QuoteVault/internal/client/repositories/quotes"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB          *sql.DB
	Quotes      quotes.Repository
	Favorites   favorites.Repository
	Collections collections.Repository
	DailyCache  dailycache.Repository
	Metadata    metadata.Repository
}

// New binds every repository to db.
func New(db *sql.DB) *Repositories {
	return &Repositories{
		DB:          db,
		Quotes:      quotes.NewSQLiteRepository(db),
		Favorites:   favorites.NewSQLiteRepository(db),
		Collections: collections.NewSQLiteRepository(db),
		DailyCache:  dailycache.NewSQLiteRepository(db),
		Metadata:    metadata.NewSQLiteRepository(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// pragmas applied to every pooled connection.
var pragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// DSN appends the connection pragmas to dsn. File databases also get WAL.
func DSN(dsn string) string {
	p := pragmas
	if !isMemory(dsn) {
		p = append([]string{"journal_mode(WAL)"}, p...)
	}
	var b strings.Builder
	b.WriteString(dsn)
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, v := range p {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(v)
		sep = "&"
	}
	return b.String()
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// InitDatabase opens the store at dsn, applies migrations and returns the
// bound repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if isMemory(dsn) {
		// every new connection to :memory: is a fresh empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db), nil
}
