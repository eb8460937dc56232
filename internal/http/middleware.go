package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the correlation ID set by Logging, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logging returns a middleware that logs HTTP requests and responses. It
// reuses an inbound X-Request-ID or mints one, and echoes it on the response.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)

			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", reqID),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionSnapshotter exposes the read side of the session store.
type SessionSnapshotter interface {
	Snapshot() domainauth.Session
}

// RequireRoles guards a route with the authorization gate. An empty role list
// admits any authenticated user.
//
// Pending sessions get an empty 200 with Retry-After so nothing protected is
// rendered before hydration finishes. Redirect decisions become a 303 for
// browsers and a 401/403 JSON body for API callers.
func RequireRoles(sessions SessionSnapshotter, roles ...domainauth.Role) func(http.Handler) http.Handler {
	allowed := domainauth.NewRoleSet(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := sessions.Snapshot()
			decision := domainauth.Authorize(snap, allowed)

			switch decision {
			case domainauth.DecisionPending:
				w.Header().Set("Retry-After", retryAfterPending)
				w.Header().Set("Cache-Control", "no-store")
				w.WriteHeader(http.StatusOK)
			case domainauth.DecisionRedirectLogin, domainauth.DecisionRedirectAdminLogin:
				denyRequest(w, r, decision)
			case domainauth.DecisionRender:
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), snap)))
			default:
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})
	}
}

func denyRequest(w http.ResponseWriter, r *http.Request, decision domainauth.Decision) {
	target := decision.RedirectPath()
	if wantsJSON(r) {
		code := http.StatusUnauthorized
		if decision == domainauth.DecisionRedirectAdminLogin {
			code = http.StatusForbidden
		}
		WriteJSON(w, code, map[string]string{"error": decision.String(), "redirect": target})
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
