package models

// DailyCacheID is the fixed key of the single daily cache row.
const DailyCacheID = "quote_of_the_day"

// DailyCache memoizes the quote of the day. It denormalizes the quote so a
// daily read never joins against the quotes table. The row is valid only for
// Date ("yyyy-MM-dd").
type DailyCache struct {
	Date     string
	QuoteID  string
	Text     string
	Author   string
	Category string
	Source   string
}

// NewDailyCache snapshots q as the pick for date.
func NewDailyCache(date string, q Quote) DailyCache {
	return DailyCache{
		Date:     date,
		QuoteID:  q.ID,
		Text:     q.Text,
		Author:   q.Author,
		Category: q.Category,
		Source:   q.Source,
	}
}

// Quote rebuilds the quote from the snapshot.
func (c DailyCache) Quote() Quote {
	return Quote{
		ID:       c.QuoteID,
		Text:     c.Text,
		Author:   c.Author,
		Category: c.Category,
		Source:   c.Source,
	}
}

// DailyPick is a remote assignment of a quote to a calendar date.
type DailyPick struct {
	Date    string
	QuoteID string
}

// DailySource tells where a resolved quote of the day came from.
type DailySource string

const (
	DailySourceCache    DailySource = "cache"
	DailySourceRemote   DailySource = "remote"
	DailySourceRandom   DailySource = "random"
	DailySourceFallback DailySource = "fallback"
)
