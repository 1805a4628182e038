package common

// DateLayout is the calendar-date format used for daily cache keys and the
// remote daily pick table ("yyyy-MM-dd").
const DateLayout = "2006-01-02"

// DefaultPageSize is the page size of the paged quote source.
const DefaultPageSize = 20
