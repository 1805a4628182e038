package models

import "time"

// Collection is a user-owned, named set of quotes. Only Name, Description,
// Color and Icon change after creation.
type Collection struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Color       string
	Icon        string
	CreatedAt   time.Time

	// QuoteCount is filled in by listing reads.
	QuoteCount int
}

// CollectionQuote is the many-to-many join between collections and quotes,
// keyed by (CollectionID, QuoteID).
type CollectionQuote struct {
	CollectionID string
	QuoteID      string
	AddedAt      time.Time
}

// CollectionInput carries the user-editable fields of a collection.
type CollectionInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// Default visual tokens for new collections.
const (
	DefaultCollectionColor = "#6366F1"
	DefaultCollectionIcon  = "bookmark"
)

// CollectionIcons are the icon tokens a collection may use.
var CollectionIcons = []string{
	"bookmark",
	"heart",
	"star",
	"lightbulb",
	"work",
	"school",
	"favorite",
	"auto_awesome",
}

// IsCollectionIcon reports whether icon is a known icon token.
func IsCollectionIcon(icon string) bool {
	for _, i := range CollectionIcons {
		if i == icon {
			return true
		}
	}
	return false
}
