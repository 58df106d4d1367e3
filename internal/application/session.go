package application

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

// SessionStore owns the authenticated identity for the lifetime of the
// process and is the only component allowed to flip logged-out/logged-in.
// Consumers that care about credits subscribe to user transitions; the
// store itself knows nothing about the ledger.
type SessionStore struct {
	auth ports.AuthAPI
	log  zerolog.Logger

	mu            sync.Mutex
	bootstrapOnce sync.Once
	user          *domain.UserIdentity
	bootstrapping bool
	subscribers   []func(*domain.UserIdentity)
}

func NewSessionStore(auth ports.AuthAPI, log zerolog.Logger) *SessionStore {
	return &SessionStore{auth: auth, log: log, bootstrapping: true}
}

// Bootstrap resolves the session from the introspection endpoint exactly
// once per process, concurrent callers included. Any failure means logged
// out; bootstrapping always ends, and never restarts.
func (s *SessionStore) Bootstrap(ctx context.Context) {
	s.bootstrapOnce.Do(func() {
		identity, err := s.auth.CurrentUser(ctx)

		s.mu.Lock()
		s.bootstrapping = false
		if err != nil {
			s.log.Debug().Err(err).Msg("session bootstrap resolved logged out")
			s.setUserLocked(nil)
			return
		}
		s.setUserLocked(&identity)
	})
}

// Login records a server-confirmed identity. Callers must only invoke it
// after a successful login or OTP-verified registration.
func (s *SessionStore) Login(identity domain.UserIdentity) {
	s.mu.Lock()
	s.setUserLocked(&identity)
}

// Logout clears the local session regardless of whether the server call
// succeeded; a dead session must never be retained locally. Idempotent.
func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
	}

	s.mu.Lock()
	s.setUserLocked(nil)
}

// RefreshIdentity re-pulls the identity after a profile change. Unlike
// bootstrap, a failure here keeps the existing session.
func (s *SessionStore) RefreshIdentity(ctx context.Context) error {
	identity, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.setUserLocked(&identity)
	return nil
}

func (s *SessionStore) User() *domain.UserIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *SessionStore) IsBootstrapping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bootstrapping
}

// Subscribe registers fn for every user transition. fn receives nil when
// the session ends. Registration order is notification order.
func (s *SessionStore) Subscribe(fn func(*domain.UserIdentity)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// setUserLocked stores the user and notifies subscribers outside the lock.
// The caller must hold mu; the lock is released here.
func (s *SessionStore) setUserLocked(user *domain.UserIdentity) {
	s.user = user
	subscribers := make([]func(*domain.UserIdentity), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		var u *domain.UserIdentity
		if user != nil {
			copied := *user
			u = &copied
		}
		fn(u)
	}
}
