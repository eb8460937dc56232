package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters and internal/apiclient; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
)

// KVStore is the durable key-value backend behind the persistence port.
// Values survive process restarts; Get reports ok=false for absent keys.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// SessionPersistence reads and writes exactly two durable keys: the bearer
// token and the serialized user record.
type SessionPersistence interface {
	// Token returns the stored token; ok is false when absent or empty.
	Token(ctx context.Context) (token string, ok bool, err error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	// User returns the cached user; a record that cannot be decoded yields an
	// error matching service.ErrCorruptUser.
	User(ctx context.Context) (user domainauth.User, ok bool, err error)
	SetUser(ctx context.Context, user domainauth.User) error
	ClearUser(ctx context.Context) error

	// Clear removes both keys.
	Clear(ctx context.Context) error
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RawUser is the backend's user object before normalization. Its shape is not
// fixed (the display name arrives as fullName, full_name or name).
type RawUser map[string]any

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token string  `json:"token"`
	User  RawUser `json:"user"`
}

// MeResponse is returned by GET /auth/me.
type MeResponse struct {
	User RawUser `json:"user"`
}

// CredentialAPI is the backend surface consumed by the credential service.
type CredentialAPI interface {
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Signup(ctx context.Context, req SignupRequest) (AuthResponse, error)
	Me(ctx context.Context) (MeResponse, error)
}
