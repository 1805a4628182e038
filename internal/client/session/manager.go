// Package session tracks the signed-in user. The Manager reads the current
// session from an Authenticator, keeps the local user id in step with it and
// broadcasts user changes to subscribers.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/logging"
	"github.com/pratish444/QuoteVault/internal/timex"
)

// Authenticator reports the current session, or nil when signed out.
type Authenticator interface {
	CurrentSession(ctx context.Context) (*models.Session, error)
}

// UserIDStore persists the signed-in user id for the sync services.
type UserIDStore interface {
	SaveUserID(ctx context.Context, id string) error
	ClearUserID(ctx context.Context) error
}

// Manager owns the current session. It is safe for concurrent use.
type Manager struct {
	auth  Authenticator
	ids   UserIDStore
	log   logging.Logger
	clock timex.Clock

	mu      sync.Mutex
	session *models.Session
	user    *models.User
	subs    map[int]chan *models.User
	nextSub int
}

// NewManager returns a Manager with no session. log may be nil.
func NewManager(auth Authenticator, ids UserIDStore, log logging.Logger, clock timex.Clock) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &Manager{auth: auth, ids: ids, log: log, clock: clock, subs: map[int]chan *models.User{}}
}

// Refresh reads the session from the Authenticator and publishes the
// resulting user. A collaborator error leaves the current state untouched.
func (m *Manager) Refresh(ctx context.Context) (*models.User, error) {
	s, err := m.auth.CurrentSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if s != nil && s.Expired(m.clock.Now()) {
		m.log.Info(ctx, "session expired", "user_id", s.User.ID)
		s = nil
	}

	if s == nil {
		if err := m.ids.ClearUserID(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear user id: %w", err)
		}
		m.set(nil)
		return nil, nil
	}

	if err := m.ids.SaveUserID(ctx, s.User.ID); err != nil {
		return nil, fmt.Errorf("failed to save user id: %w", err)
	}
	m.set(s)
	m.log.Debug(ctx, "session refreshed", "user_id", s.User.ID)

	u := s.User
	return &u, nil
}

// SignOut drops the session and clears the stored user id.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.ids.ClearUserID(ctx); err != nil {
		return fmt.Errorf("failed to clear user id: %w", err)
	}
	m.set(nil)
	return nil
}

// Current returns the latest published user, or nil.
func (m *Manager) Current() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Token returns the session access token, or "" when signed out. The remote
// backends then authenticate with the anonymous key.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.AccessToken
}

// Subscribe returns a channel that receives the latest user on every change.
// The channel holds one value; a slow reader only ever sees the newest one.
// The current value is delivered immediately. cancel closes the channel.
func (m *Manager) Subscribe() (<-chan *models.User, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *models.User, 1)
	ch <- m.user
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (m *Manager) set(s *models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = s
	m.user = nil
	if s != nil {
		u := s.User
		m.user = &u
	}

	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- m.user
	}
}
