package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	"github.com/showcase-labs/showcase-console/internal/apiclient"
	"github.com/showcase-labs/showcase-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialAPI = (*StubCredentialAPI)(nil)
	_ ports.KVStore       = (*FaultyKV)(nil)
)

// StubCredentialAPI simulates the backend's credential endpoints with a fixed account table.
type StubCredentialAPI struct {
	LoginFunc  func(ctx context.Context, req ports.LoginRequest) (ports.AuthResponse, error)
	SignupFunc func(ctx context.Context, req ports.SignupRequest) (ports.AuthResponse, error)
	MeFunc     func(ctx context.Context) (ports.MeResponse, error)

	// Users maps email to the raw user object returned on success.
	Users map[string]ports.RawUser
	// Passwords maps email to the accepted password.
	Passwords map[string]string

	mu    sync.Mutex
	calls map[string]int
}

// NewStubCredentialAPI creates a stub that knows one account per role.
func NewStubCredentialAPI() *StubCredentialAPI {
	return &StubCredentialAPI{
		Users: map[string]ports.RawUser{
			"user@example.com":  {"id": 1, "fullName": "Uma User", "email": "user@example.com", "role": "user"},
			"dev@example.com":   {"id": 2, "full_name": "Dev Eloper", "email": "dev@example.com", "role": "developer"},
			"admin@example.com": {"id": "adm-3", "name": "Ada Admin", "email": "admin@example.com", "role": "admin"},
		},
		Passwords: map[string]string{
			"user@example.com":  "password",
			"dev@example.com":   "password",
			"admin@example.com": "password",
		},
	}
}

// Calls returns how many times method was invoked.
func (s *StubCredentialAPI) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *StubCredentialAPI) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[method]++
}

func (s *StubCredentialAPI) Login(ctx context.Context, req ports.LoginRequest) (ports.AuthResponse, error) {
	s.record("Login")
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, req)
	}
	u, ok := s.Users[req.Email]
	if !ok {
		return ports.AuthResponse{}, &apiclient.Error{Status: 401, Code: apiclient.CodeEmailNotFound, Message: "No account with that email."}
	}
	if s.Passwords[req.Email] != req.Password {
		return ports.AuthResponse{}, &apiclient.Error{Status: 401, Code: apiclient.CodePasswordIncorrect, Message: "Incorrect password."}
	}
	return ports.AuthResponse{Token: "token-" + req.Email, User: u}, nil
}

func (s *StubCredentialAPI) Signup(ctx context.Context, req ports.SignupRequest) (ports.AuthResponse, error) {
	s.record("Signup")
	if s.SignupFunc != nil {
		return s.SignupFunc(ctx, req)
	}
	if _, exists := s.Users[req.Email]; exists {
		return ports.AuthResponse{}, &apiclient.Error{Status: 409, Code: apiclient.CodeEmailTaken, Message: "Email already registered."}
	}
	u := ports.RawUser{"id": len(s.Users) + 100, "fullName": req.FullName, "email": req.Email, "role": req.Role}
	if s.Users == nil {
		s.Users = make(map[string]ports.RawUser)
		s.Passwords = make(map[string]string)
	}
	s.Users[req.Email] = u
	s.Passwords[req.Email] = req.Password
	return ports.AuthResponse{Token: "token-" + req.Email, User: u}, nil
}

func (s *StubCredentialAPI) Me(ctx context.Context) (ports.MeResponse, error) {
	s.record("Me")
	if s.MeFunc != nil {
		return s.MeFunc(ctx)
	}
	return ports.MeResponse{}, &apiclient.Error{Status: 401, Message: "unauthorized"}
}

// ErrInjected is the default failure returned by FaultyKV.
var ErrInjected = errors.New("injected storage failure")

// FaultyKV wraps a KVStore and fails selected operations.
type FaultyKV struct {
	Inner ports.KVStore

	GetErr    error
	SetErr    error
	DeleteErr error
	// FailKeys restricts failures to these keys; empty means every key.
	FailKeys []string
}

func (f *FaultyKV) hits(keys ...string) bool {
	if len(f.FailKeys) == 0 {
		return true
	}
	for _, k := range keys {
		for _, fk := range f.FailKeys {
			if k == fk {
				return true
			}
		}
	}
	return false
}

func (f *FaultyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil && f.hits(key) {
		return "", false, f.GetErr
	}
	return f.Inner.Get(ctx, key)
}

func (f *FaultyKV) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil && f.hits(key) {
		return f.SetErr
	}
	return f.Inner.Set(ctx, key, value)
}

func (f *FaultyKV) Delete(ctx context.Context, keys ...string) error {
	if f.DeleteErr != nil && f.hits(keys...) {
		return f.DeleteErr
	}
	return f.Inner.Delete(ctx, keys...)
}
