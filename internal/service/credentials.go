package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	apperrors "github.com/showcase-labs/showcase-console/internal/errors"
	"github.com/showcase-labs/showcase-console/internal/ports"
)

// ErrNotAuthenticated is returned when an operation needs a stored token and none exists.
var ErrNotAuthenticated = apperrors.Unauthenticated("not authenticated")

// CredentialServiceOptions groups dependencies for CredentialService.
type CredentialServiceOptions struct {
	API    ports.CredentialAPI
	Store  ports.SessionPersistence
	Logger *slog.Logger

	// RememberMe is sent with every login request.
	RememberMe bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// CredentialService talks to the backend's credential endpoints, normalizes the
// returned user and writes it through to the persisted cache.
type CredentialService struct {
	api        ports.CredentialAPI
	store      ports.SessionPersistence
	logger     *slog.Logger
	rememberMe bool
	now        func() time.Time
}

// NewCredentialService constructs a CredentialService.
func NewCredentialService(opts CredentialServiceOptions) *CredentialService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &CredentialService{
		api:        opts.API,
		store:      opts.Store,
		logger:     opts.Logger,
		rememberMe: opts.RememberMe,
		now:        now,
	}
}

func (s *CredentialService) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// LoginInput groups parameters for Login.
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput groups parameters for Signup. Role is the requested role; the
// backend's answer is authoritative.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domainauth.Role
}

// AuthResult is what a successful login or signup yields.
type AuthResult struct {
	Token string
	User  domainauth.User
}

// Login authenticates against POST /auth/login. Only the user is cached here;
// the caller owns token persistence.
func (s *CredentialService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "Email is required.")
	}
	if in.Password == "" {
		return nil, apperrors.ValidationField("password", "Password is required.")
	}

	resp, err := s.api.Login(ctx, ports.LoginRequest{
		Email:      email,
		Password:   in.Password,
		RememberMe: s.rememberMe,
	})
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, resp)
}

// Signup registers through POST /auth/signup.
func (s *CredentialService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	resp, err := s.api.Signup(ctx, ports.SignupRequest{
		FullName: strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Role:     in.Role.String(),
	})
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, resp)
}

func validateSignup(in SignupInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperrors.ValidationField("name", "Full name is required.")
	case strings.TrimSpace(in.Email) == "":
		return apperrors.ValidationField("email", "Email is required.")
	case in.Password == "":
		return apperrors.ValidationField("password", "Password is required.")
	case !in.Role.Valid():
		return apperrors.ValidationField("role", "Choose a valid role.")
	}
	return nil
}

func (s *CredentialService) accept(ctx context.Context, resp ports.AuthResponse) (*AuthResult, error) {
	if resp.Token == "" {
		return nil, errors.New("backend returned an empty token")
	}
	u, err := NormalizeUser(resp.User)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetUser(ctx, u); err != nil {
		return nil, fmt.Errorf("cache user: %w", err)
	}
	return &AuthResult{Token: resp.Token, User: u}, nil
}

// GetMe fetches the current user from GET /auth/me. Without a stored token it
// fails with ErrNotAuthenticated before any network call.
func (s *CredentialService) GetMe(ctx context.Context) (domainauth.User, error) {
	_, ok, err := s.store.Token(ctx)
	if err != nil {
		return domainauth.User{}, err
	}
	if !ok {
		return domainauth.User{}, ErrNotAuthenticated
	}

	resp, err := s.api.Me(ctx)
	if err != nil {
		return domainauth.User{}, fmt.Errorf("me: %w", err)
	}
	u, err := NormalizeUser(resp.User)
	if err != nil {
		return domainauth.User{}, err
	}
	if err := s.store.SetUser(ctx, u); err != nil {
		return domainauth.User{}, fmt.Errorf("cache user: %w", err)
	}
	return u, nil
}

// ProfilePatch lists the cached-user fields UpdateProfile may change. Nil means unchanged.
type ProfilePatch struct {
	Name         *string
	ProfileImage *string
}

// UpdateProfile merges patch into the cached user. The backend is not told.
func (s *CredentialService) UpdateProfile(ctx context.Context, patch ProfilePatch) (domainauth.User, error) {
	u, ok, err := s.store.User(ctx)
	if err != nil {
		return domainauth.User{}, err
	}
	if !ok {
		return domainauth.User{}, ErrNotAuthenticated
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domainauth.User{}, apperrors.ValidationField("name", "Full name cannot be empty.")
		}
		u.Name = name
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = strings.TrimSpace(*patch.ProfileImage)
	}

	if err := s.store.SetUser(ctx, u); err != nil {
		return domainauth.User{}, fmt.Errorf("cache user: %w", err)
	}
	s.log().InfoContext(ctx, "profile updated locally", "user_id", u.ID)
	return u, nil
}

// PasswordResetAck acknowledges a reset request. Nothing is sent anywhere.
type PasswordResetAck struct {
	Email       string
	RequestedAt time.Time
}

// RequestPasswordReset validates the address and returns a local acknowledgement.
func (s *CredentialService) RequestPasswordReset(ctx context.Context, email string) (PasswordResetAck, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return PasswordResetAck{}, apperrors.ValidationField("email", "Enter a valid email address.")
	}
	ack := PasswordResetAck{Email: addr.Address, RequestedAt: s.now().UTC()}
	s.log().InfoContext(ctx, "password reset requested", "email", ack.Email)
	return ack, nil
}
