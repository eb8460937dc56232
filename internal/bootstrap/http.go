package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/showcase-labs/showcase-console/config"
	httpx "github.com/showcase-labs/showcase-console/internal/http"
)

// HTTPServerConfig contains configuration for the console HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the console server. The caller owns ListenAndServe.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Session:     cfg.Services.Session,
		Credentials: cfg.Services.Credentials,
		Preferences: cfg.Services.Preferences,
		Storage:     cfg.Services.KV,
		IsDev:       appCfg.IsDev,
		Logger:      logger,
	}

	return newServer(buildHTTPHandler(logger, appCfg.HTTP, services), appCfg.HTTP.Addr)
}

func buildHTTPHandler(logger *slog.Logger, httpCfg config.HTTPConfig, services httpx.RouterServices) http.Handler {
	// Order: Recover -> Logging -> Compression -> Router
	h := httpx.NewRouter(services)
	if httpCfg.Compression {
		h = httpx.Compression(httpx.CompressionOptions{MinSize: httpCfg.CompressMinSize, Logger: logger})(h)
	}
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)
	return h
}

func newServer(handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Name    string
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down an HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server", "service", cfg.Name)
	}

	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped", "service", cfg.Name)
	}

	return nil
}
