package models

import "time"

// Favorite marks a quote as favorited by a user. The row's existence is the
// membership; there is no soft delete.
type Favorite struct {
	ID        string
	UserID    string
	QuoteID   string
	CreatedAt time.Time
}
