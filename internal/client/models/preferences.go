package models

import "strings"

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight  Theme = "LIGHT"
	ThemeDark   Theme = "DARK"
	ThemeSystem Theme = "SYSTEM"
)

// ParseTheme returns the theme named s (case-insensitive) or ThemeSystem.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToUpper(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	case ThemeSystem:
		return ThemeSystem, true
	}
	return ThemeSystem, false
}

// FontSize is the reading font size step.
type FontSize string

const (
	FontSizeSmall      FontSize = "SMALL"
	FontSizeMedium     FontSize = "MEDIUM"
	FontSizeLarge      FontSize = "LARGE"
	FontSizeExtraLarge FontSize = "EXTRA_LARGE"
)

// Scale is the multiplier applied to the base font size.
func (f FontSize) Scale() float64 {
	switch f {
	case FontSizeSmall:
		return 0.85
	case FontSizeLarge:
		return 1.15
	case FontSizeExtraLarge:
		return 1.3
	default:
		return 1.0
	}
}

// ParseFontSize returns the size named s (case-insensitive) or FontSizeMedium.
func ParseFontSize(s string) (FontSize, bool) {
	switch FontSize(strings.ToUpper(strings.TrimSpace(s))) {
	case FontSizeSmall:
		return FontSizeSmall, true
	case FontSizeMedium:
		return FontSizeMedium, true
	case FontSizeLarge:
		return FontSizeLarge, true
	case FontSizeExtraLarge:
		return FontSizeExtraLarge, true
	}
	return FontSizeMedium, false
}

// AccentColors maps accent names to their hex tokens.
var AccentColors = map[string]string{
	"Indigo": "#6366F1",
	"Purple": "#9333EA",
	"Pink":   "#EC4899",
	"Orange": "#F97316",
	"Green":  "#10B981",
}

// FontFamilies lists the selectable reading fonts.
var FontFamilies = []string{"Lora", "Merriweather", "Crimson Text"}

// Preferences is the user's settings record. The local key-value store is
// authoritative; a remote row keyed by user id may mirror it.
type Preferences struct {
	Theme                Theme
	AccentColor          string
	FontSize             FontSize
	FontFamily           string
	NotificationsEnabled bool
	NotificationHour     int
	NotificationMinute   int
}

// DefaultPreferences returns the first-run settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                ThemeSystem,
		AccentColor:          "#6366F1",
		FontSize:             FontSizeMedium,
		FontFamily:           "Lora",
		NotificationsEnabled: false,
		NotificationHour:     8,
		NotificationMinute:   0,
	}
}
