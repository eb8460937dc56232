package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/ports"
)

// Authenticator is the credential surface the session store depends on.
type Authenticator interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
}

var _ Authenticator = (*CredentialService)(nil)

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	Credentials Authenticator
	Persistence ports.SessionPersistence
	Logger      *slog.Logger
}

// SessionStore is the in-memory source of truth for who is logged in.
//
// The mutex only keeps field access memory-safe. Operations are not serialized
// against each other: two concurrent logins both run and the last one to
// finish owns the session.
type SessionStore struct {
	credentials Authenticator
	persistence ports.SessionPersistence
	logger      *slog.Logger

	mu      sync.RWMutex
	user    *domainauth.User
	loading bool

	hydrateOnce sync.Once
}

// NewSessionStore constructs a store in the loading state. Call Hydrate once at startup.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	return &SessionStore{
		credentials: opts.Credentials,
		persistence: opts.Persistence,
		logger:      opts.Logger,
		loading:     true,
	}
}

func (s *SessionStore) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Hydrate restores the session from persistence. It runs at most once per store,
// never returns an error and always leaves the store with loading=false.
func (s *SessionStore) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.log().ErrorContext(ctx, "session hydration panicked", "panic", rec)
			}
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()

		u, ok := s.restore(ctx)
		if !ok {
			return
		}
		s.mu.Lock()
		s.user = &u
		s.mu.Unlock()
		s.log().DebugContext(ctx, "session restored", "user_id", u.ID, "role", u.Role)
	})
}

func (s *SessionStore) restore(ctx context.Context) (domainauth.User, bool) {
	_, hasToken, err := s.persistence.Token(ctx)
	if err != nil {
		s.log().WarnContext(ctx, "read persisted token", "error", err)
		return domainauth.User{}, false
	}

	u, hasUser, err := s.persistence.User(ctx)
	if errors.Is(err, ErrCorruptUser) {
		s.log().WarnContext(ctx, "discarding corrupt persisted session", "error", err)
		if clearErr := s.persistence.Clear(ctx); clearErr != nil {
			s.log().ErrorContext(ctx, "clear corrupt session", "error", clearErr)
		}
		return domainauth.User{}, false
	}
	if err != nil {
		s.log().WarnContext(ctx, "read persisted user", "error", err)
		return domainauth.User{}, false
	}

	if !hasToken || !hasUser {
		return domainauth.User{}, false
	}
	return u, true
}

// Login authenticates and, on success, persists token and user before updating memory.
// Credential errors are returned unchanged.
func (s *SessionStore) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	res, err := s.credentials.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Signup registers and establishes the session exactly like Login.
func (s *SessionStore) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	res, err := s.credentials.Signup(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SessionStore) commit(ctx context.Context, res *AuthResult) error {
	if err := s.persistence.SetToken(ctx, res.Token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.persistence.SetUser(ctx, res.User); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	u := res.User
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.log().InfoContext(ctx, "session established", "user_id", u.ID, "role", u.Role)
	return nil
}

// Logout removes the persisted token and forgets the in-memory user. The
// cached user record stays on disk; without a token it never rehydrates.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.persistence.ClearToken(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.log().InfoContext(ctx, "session ended")
	return nil
}

// UpdateUser replaces the in-memory user. Persistence is not touched.
func (s *SessionStore) UpdateUser(u domainauth.User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

// User returns a copy of the current user, or nil.
func (s *SessionStore) User() *domainauth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether hydration is still pending.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot returns a consistent copy of the session for the gate and views.
func (s *SessionStore) Snapshot() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := domainauth.Session{Loading: s.loading}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
