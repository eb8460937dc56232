package apiclient

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// TokenSource is the slice of session persistence the transport needs.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool, err error)
	// Clear removes both persisted session keys.
	Clear(ctx context.Context) error
}

// RequestIDHeader is set on outbound requests that do not already carry one.
const RequestIDHeader = "X-Request-ID"

// Transport attaches the stored bearer token to outbound requests and severs
// the token from storage when the backend answers 401.
//
// A 401 clears persistence only. Any in-memory session keeps its user until
// the next hydration.
type Transport struct {
	Base   http.RoundTripper
	Tokens TokenSource
	Logger *slog.Logger
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// RoundTrip implements http.RoundTripper. The caller's request is never mutated.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	if out.Header.Get("Authorization") == "" && t.Tokens != nil {
		token, ok, err := t.Tokens.Token(ctx)
		switch {
		case err != nil:
			t.logger().WarnContext(ctx, "read token for outbound request", "error", err)
		case ok:
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
		}
	}
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.NewString())
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.Tokens != nil {
		if clearErr := t.Tokens.Clear(ctx); clearErr != nil {
			t.logger().ErrorContext(ctx, "clear session after 401", "error", clearErr)
		} else {
			t.logger().InfoContext(ctx, "session cleared after 401",
				"method", out.Method,
				"path", out.URL.Path,
				"request_id", out.Header.Get(RequestIDHeader))
		}
	}
	return resp, nil
}
