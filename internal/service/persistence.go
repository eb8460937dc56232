package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/ports"
)

// Durable keys owned by the console. Session clears only ever touch TokenKey and UserKey.
const (
	TokenKey      = "token"
	UserKey       = "user"
	AdminThemeKey = "admin-theme"
)

// ErrCorruptUser is returned when the persisted user record cannot be decoded.
var ErrCorruptUser = errors.New("persisted user record is corrupt")

// SessionPersistence implements ports.SessionPersistence over a ports.KVStore.
type SessionPersistence struct {
	kv ports.KVStore
}

var _ ports.SessionPersistence = (*SessionPersistence)(nil)

// NewSessionPersistence constructs a SessionPersistence backed by kv.
func NewSessionPersistence(kv ports.KVStore) *SessionPersistence {
	return &SessionPersistence{kv: kv}
}

// Token returns the stored bearer token. An empty stored value counts as absent.
func (p *SessionPersistence) Token(ctx context.Context) (string, bool, error) {
	v, ok, err := p.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// SetToken stores the bearer token.
func (p *SessionPersistence) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := p.kv.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// ClearToken removes the token key only.
func (p *SessionPersistence) ClearToken(ctx context.Context) error {
	if err := p.kv.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// User decodes the cached user record. A stored JSON null is treated as absent.
func (p *SessionPersistence) User(ctx context.Context) (domainauth.User, bool, error) {
	v, ok, err := p.kv.Get(ctx, UserKey)
	if err != nil {
		return domainauth.User{}, false, fmt.Errorf("read user: %w", err)
	}
	if !ok || v == "" || v == "null" {
		return domainauth.User{}, false, nil
	}

	var u domainauth.User
	if decodeErr := json.Unmarshal([]byte(v), &u); decodeErr != nil {
		return domainauth.User{}, false, fmt.Errorf("%w: %w", ErrCorruptUser, decodeErr)
	}
	return u, true, nil
}

// SetUser serializes u into the user key.
func (p *SessionPersistence) SetUser(ctx context.Context, u domainauth.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := p.kv.Set(ctx, UserKey, string(data)); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// ClearUser removes the user key only.
func (p *SessionPersistence) ClearUser(ctx context.Context) error {
	if err := p.kv.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

// Clear removes both session keys in one call. Other keys are untouched.
func (p *SessionPersistence) Clear(ctx context.Context) error {
	if err := p.kv.Delete(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
