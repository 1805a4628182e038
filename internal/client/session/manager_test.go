package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/timex"
)

type fakeAuth struct {
	session *models.Session
	err     error
}

func (f *fakeAuth) CurrentSession(ctx context.Context) (*models.Session, error) {
	return f.session, f.err
}

type fakeIDs struct {
	id      string
	cleared int
	err     error
}

func (f *fakeIDs) SaveUserID(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.id = id
	return nil
}

func (f *fakeIDs) ClearUserID(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.id = ""
	f.cleared++
	return nil
}

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newManager(auth Authenticator) (*Manager, *fakeIDs) {
	ids := &fakeIDs{}
	return NewManager(auth, ids, nil, timex.NewFixedClock(now)), ids
}

func alice() *models.Session {
	return &models.Session{
		AccessToken: "tok",
		ExpiresAt:   now.Add(time.Hour),
		User:        models.User{ID: "u-1", Email: "alice@example.com"},
	}
}

func TestManager_RefreshSignedIn(t *testing.T) {
	m, ids := newManager(&fakeAuth{session: alice()})

	u, err := m.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "u-1", ids.id)
	assert.Equal(t, "tok", m.Token())
	assert.Equal(t, "alice@example.com", m.Current().Email)
}

func TestManager_RefreshSignedOut(t *testing.T) {
	auth := &fakeAuth{session: alice()}
	m, ids := newManager(auth)
	_, err := m.Refresh(context.Background())
	require.NoError(t, err)

	auth.session = nil
	u, err := m.Refresh(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Nil(t, m.Current())
	assert.Equal(t, "", m.Token())
	assert.Equal(t, "", ids.id)
	assert.Equal(t, 1, ids.cleared)
}

func TestManager_ExpiredSessionIsSignedOut(t *testing.T) {
	s := alice()
	s.ExpiresAt = now.Add(-time.Minute)
	m, ids := newManager(&fakeAuth{session: s})

	u, err := m.Refresh(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 1, ids.cleared)
}

func TestManager_AuthErrorKeepsState(t *testing.T) {
	auth := &fakeAuth{session: alice()}
	m, _ := newManager(auth)
	_, err := m.Refresh(context.Background())
	require.NoError(t, err)

	auth.err = errors.New("boom")
	_, err = m.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, "u-1", m.Current().ID)
}

func TestManager_StoreErrorIsReturned(t *testing.T) {
	m, ids := newManager(&fakeAuth{session: alice()})
	ids.err = errors.New("disk full")

	_, err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ids.err)
	assert.Nil(t, m.Current())
}

func TestManager_SubscribeReplaysLatest(t *testing.T) {
	m, _ := newManager(&fakeAuth{session: alice()})

	ch, cancel := m.Subscribe()
	defer cancel()
	assert.Nil(t, <-ch)

	_, err := m.Refresh(context.Background())
	require.NoError(t, err)

	late, cancelLate := m.Subscribe()
	defer cancelLate()
	u := <-late
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
}

func TestManager_SubscribeDropsOldest(t *testing.T) {
	auth := &fakeAuth{session: alice()}
	m, _ := newManager(auth)
	ch, cancel := m.Subscribe()
	defer cancel()

	_, err := m.Refresh(context.Background())
	require.NoError(t, err)
	auth.session = nil
	_, err = m.Refresh(context.Background())
	require.NoError(t, err)

	// only the newest value is buffered
	assert.Nil(t, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %v", v)
	default:
	}
}

func TestManager_CancelClosesChannel(t *testing.T) {
	m, _ := newManager(&fakeAuth{session: alice()})
	ch, cancel := m.Subscribe()
	<-ch
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	_, err := m.Refresh(context.Background())
	require.NoError(t, err)
}

func TestManager_SignOut(t *testing.T) {
	m, ids := newManager(&fakeAuth{session: alice()})
	_, err := m.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.SignOut(context.Background()))
	assert.Nil(t, m.Current())
	assert.Equal(t, "", ids.id)
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestParseToken(t *testing.T) {
	tok := signed(t, jwt.MapClaims{
		"sub":   "u-9",
		"email": "bob@example.com",
		"exp":   now.Add(time.Hour).Unix(),
		"user_metadata": map[string]any{
			"display_name": "Bob",
			"avatar_url":   "https://example.com/bob.png",
		},
	})

	s, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, tok, s.AccessToken)
	assert.Equal(t, models.User{
		ID: "u-9", Email: "bob@example.com", DisplayName: "Bob", AvatarURL: "https://example.com/bob.png",
	}, s.User)
	assert.Equal(t, now.Add(time.Hour).Unix(), s.ExpiresAt.Unix())
}

func TestParseToken_Invalid(t *testing.T) {
	_, err := ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(signed(t, jwt.MapClaims{"email": "x@example.com"}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStaticAuthenticator(t *testing.T) {
	s, err := NewStaticAuthenticator("").CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)

	expired := signed(t, jwt.MapClaims{"sub": "u-1", "exp": now.Add(-time.Hour).Unix()})
	m, ids := newManager(NewStaticAuthenticator(expired))
	u, err := m.Refresh(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 1, ids.cleared)
}
