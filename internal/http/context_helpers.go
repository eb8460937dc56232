package httpx

import (
	"context"

	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying the session snapshot
// the gate admitted the request with.
func SetSessionInContext(ctx context.Context, session domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session snapshot and whether one was set.
func GetSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domainauth.Session)
	return s, ok
}

// CurrentUser returns the admitted user, or nil outside gated routes.
func CurrentUser(ctx context.Context) *domainauth.User {
	s, ok := GetSessionFromContext(ctx)
	if !ok || s.User == nil {
		return nil
	}
	u := *s.User
	return &u
}
