// Package remote talks to the hosted relational backend through a generic
// table CRUD surface. Two backends implement Client: HTTPClient speaks the
// PostgREST dialect, PostgresClient talks to Postgres directly.
//
// Nothing here retries or caches. Callers bound each call with
// context.WithTimeout; an expired deadline surfaces as ErrUnavailable.
package remote

import "context"

// Row is a loosely typed remote record. Decode it with package decode.
type Row = map[string]any

// Cond is one equality condition.
type Cond struct {
	Column string
	Value  any
}

// Filter is an ordered conjunction of equality conditions with an optional
// row limit (0 means no limit).
type Filter struct {
	Conds []Cond
	Limit int
}

// All matches every row.
var All = Filter{}

// Eq starts a filter with column = value.
func Eq(column string, value any) Filter {
	return Filter{Conds: []Cond{{Column: column, Value: value}}}
}

// Eq returns a copy of f with column = value appended.
func (f Filter) Eq(column string, value any) Filter {
	conds := make([]Cond, 0, len(f.Conds)+1)
	conds = append(conds, f.Conds...)
	f.Conds = append(conds, Cond{Column: column, Value: value})
	return f
}

// WithLimit returns a copy of f limited to n rows.
func (f Filter) WithLimit(n int) Filter {
	f.Limit = n
	return f
}

type Client interface {
	Select(ctx context.Context, table string, f Filter) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) error
	// Update and Delete refuse an empty filter with ErrUnfiltered.
	Update(ctx context.Context, table string, row Row, f Filter) error
	Delete(ctx context.Context, table string, f Filter) error
}

// TokenSource yields the bearer token for the current session, or "" when
// signed out.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Remote table names.
const (
	TableQuotes           = "quotes"
	TableFavorites        = "user_favorites"
	TableCollections      = "collections"
	TableCollectionQuotes = "collection_quotes"
	TableDailyQuotes      = "daily_quotes"
	TablePreferences      = "user_preferences"
)
