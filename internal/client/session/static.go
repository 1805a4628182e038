package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cast"

	"github.com/pratish444/QuoteVault/internal/client/models"
)

var ErrInvalidToken = errors.New("invalid access token")

// StaticAuthenticator serves a session built from a fixed access token. The
// token is decoded without verification; the backend verifies it on use.
type StaticAuthenticator struct {
	token string
}

func NewStaticAuthenticator(token string) *StaticAuthenticator {
	return &StaticAuthenticator{token: token}
}

// CurrentSession returns nil when no token is configured.
func (a *StaticAuthenticator) CurrentSession(ctx context.Context) (*models.Session, error) {
	if a.token == "" {
		return nil, nil
	}
	return ParseToken(a.token)
}

// ParseToken decodes the claims of an access token into a session.
func ParseToken(token string) (*models.Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	s := &models.Session{
		AccessToken: token,
		User: models.User{
			ID:    sub,
			Email: cast.ToString(claims["email"]),
		},
	}
	if exp != nil {
		s.ExpiresAt = exp.Time
	}
	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		s.User.DisplayName = cast.ToString(meta["display_name"])
		s.User.AvatarURL = cast.ToString(meta["avatar_url"])
	}
	return s, nil
}
