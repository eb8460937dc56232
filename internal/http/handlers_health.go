package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/showcase-labs/showcase-console/internal/ports"
)

const (
	healthResponse   = `{"status":"ok"}`
	readinessTimeout = 2 * time.Second
	// readinessProbeKey is read, never written.
	readinessProbeKey = "readyz-probe"
)

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// readinessHandler reports ready once hydration finished and the persistence backend answers.
func readinessHandler(sessions SessionSnapshotter, kv ports.KVStore, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions.Snapshot().Loading {
			w.Header().Set("Retry-After", retryAfterPending)
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "hydrating"})
			return
		}
		if kv != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if _, _, err := kv.Get(ctx, readinessProbeKey); err != nil {
				logger.WarnContext(r.Context(), "readiness probe failed", "error", err)
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "storage_unavailable"})
				return
			}
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
