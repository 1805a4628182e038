// Package decode turns loosely typed remote rows into models. Every field
// has an explicit default: a missing, null or wrongly typed value yields the
// default and never an error or a panic.
package decode

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/client/remote"
	"github.com/pratish444/QuoteVault/internal/common"
)

func value(row remote.Row, key string) (any, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns row[key] as a string, or def.
func String(row remote.Row, key, def string) string {
	v, ok := value(row, key)
	if !ok {
		return def
	}
	switch v.(type) {
	case map[string]any, []any:
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

// OptString returns row[key] as a string, or "".
func OptString(row remote.Row, key string) string {
	return String(row, key, "")
}

// Bool returns row[key] as a bool, or def.
func Bool(row remote.Row, key string, def bool) bool {
	v, ok := value(row, key)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Int returns row[key] as an int, or def.
func Int(row remote.Row, key string, def int) int {
	v, ok := value(row, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return def
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return def
		}
		// cast parses strings with base prefixes; "08" must stay decimal
		v = strings.TrimLeft(s, "0")
		if v == "" {
			return 0
		}
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// IntRange is Int constrained to [lo, hi]; out-of-range values yield def.
func IntRange(row remote.Row, key string, lo, hi, def int) int {
	n := Int(row, key, def)
	if n < lo || n > hi {
		return def
	}
	return n
}

// Time returns row[key] as a time. Strings are parsed as timestamps,
// numbers as unix milliseconds.
func Time(row remote.Row, key string, def time.Time) time.Time {
	v, ok := value(row, key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := cast.ToTimeE(t)
		if err != nil {
			return def
		}
		return parsed
	}
	ms, err := cast.ToInt64E(v)
	if err != nil {
		return def
	}
	return time.UnixMilli(ms)
}

// Date returns row[key] as a calendar date string (yyyy-MM-dd), or def.
func Date(row remote.Row, key, def string) string {
	v, ok := value(row, key)
	if !ok {
		return def
	}
	if t, isTime := v.(time.Time); isTime {
		return t.Format(common.DateLayout)
	}
	s := strings.TrimSpace(String(row, key, def))
	if len(s) > len(common.DateLayout) {
		s = s[:len(common.DateLayout)]
	}
	if _, err := time.Parse(common.DateLayout, s); err != nil {
		return def
	}
	return s
}

// Quote decodes a quotes row. ok is false when the row has no id.
func Quote(row remote.Row) (q models.Quote, ok bool) {
	q = models.Quote{
		ID:        strings.TrimSpace(OptString(row, "id")),
		Text:      OptString(row, "text"),
		Author:    OptString(row, "author"),
		Category:  OptString(row, "category"),
		Source:    OptString(row, "source"),
		CreatedAt: Time(row, "created_at", time.Time{}),
	}
	return q, q.ID != ""
}

// DailyPick decodes a daily_quotes row. ok is false when either the date or
// the quote id is missing.
func DailyPick(row remote.Row) (p models.DailyPick, ok bool) {
	p = models.DailyPick{
		Date:    Date(row, "date", ""),
		QuoteID: strings.TrimSpace(OptString(row, "quote_id")),
	}
	return p, p.Date != "" && p.QuoteID != ""
}

// Preferences decodes a user_preferences row over the defaults.
func Preferences(row remote.Row) models.Preferences {
	def := models.DefaultPreferences()

	theme, ok := models.ParseTheme(OptString(row, "theme"))
	if !ok {
		theme = def.Theme
	}
	size, ok := models.ParseFontSize(OptString(row, "font_size"))
	if !ok {
		size = def.FontSize
	}

	return models.Preferences{
		Theme:                theme,
		AccentColor:          nonEmpty(OptString(row, "accent_color"), def.AccentColor),
		FontSize:             size,
		FontFamily:           nonEmpty(OptString(row, "font_family"), def.FontFamily),
		NotificationsEnabled: Bool(row, "notifications_enabled", def.NotificationsEnabled),
		NotificationHour:     IntRange(row, "notification_hour", 0, 23, def.NotificationHour),
		NotificationMinute:   IntRange(row, "notification_minute", 0, 59, def.NotificationMinute),
	}
}

func nonEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
