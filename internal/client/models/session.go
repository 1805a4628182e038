package models

import "time"

// User is the signed-in account as reported by the auth provider.
type User struct {
	ID          string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Session is an authenticated session issued by the auth provider.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}

// Expired reports whether the session has an expiry before now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
