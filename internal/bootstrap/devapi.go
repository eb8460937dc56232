package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/showcase-labs/showcase-console/config"
	"github.com/showcase-labs/showcase-console/internal/devapi"
)

// NewDevAPIHandler builds the development backend's handler from config.
func NewDevAPIHandler(cfg config.DevAPIConfig, logger *slog.Logger) (http.Handler, error) {
	srv, err := devapi.NewServer(devapi.Options{
		Secret:           []byte(cfg.JWTSecret),
		TokenTTL:         cfg.TokenTTL,
		NameField:        cfg.NameField,
		AllowAdminSignup: cfg.AllowAdminSignup,
		SeedPassword:     cfg.SeedPassword,
		BcryptCost:       cfg.BcryptCost,
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build dev api: %w", err)
	}
	return srv.Handler(), nil
}

// NewDevAPIServer wraps NewDevAPIHandler in an http.Server bound to cfg.Addr.
func NewDevAPIServer(cfg config.DevAPIConfig, logger *slog.Logger) (*http.Server, error) {
	h, err := NewDevAPIHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	addr := cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:5000"
	}
	return newServer(h, addr), nil
}
