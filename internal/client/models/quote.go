// Package models defines the records kept by the local store and mirrored to
// the remote backend: quotes, favorites, collections, the daily cache and the
// user's preferences.
package models

import "time"

// Quote is a content item. Quotes are immutable once pulled and are replaced
// wholesale on resync.
type Quote struct {
	ID       string
	Text     string
	Author   string
	Category string
	// Source is optional; "" means none.
	Source    string
	CreatedAt time.Time

	// IsFavorite is filled in by favorite-aware reads only.
	IsFavorite bool
}

// Categories lists the category filters offered by the reader. "All" means
// no filter.
var Categories = []string{"All", "Motivation", "Love", "Success", "Wisdom", "Humor"}

// CategoryAll disables category filtering.
const CategoryAll = "All"

// DefaultQuoteID identifies the built-in fallback quote.
const DefaultQuoteID = "default-quote"

// DefaultQuote is returned by the daily resolver when nothing else is
// available. It is never written to the daily cache.
func DefaultQuote() Quote {
	return Quote{
		ID:       DefaultQuoteID,
		Text:     "The only way to do great work is to love what you do.",
		Author:   "Steve Jobs",
		Category: "Motivation",
		Source:   "app",
	}
}
