package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/showcase-labs/showcase-console/config"
	"github.com/showcase-labs/showcase-console/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}

	logger := bootstrap.InitLogger(cfg.Log)
	if err := run(ctx, &cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	logStartupInfo(ctx, logger, cfg)

	if err := bootstrap.ValidateServiceConfig(cfg); err != nil {
		return err
	}

	var services bootstrap.ServiceContainer
	if cfg.IsConsoleEnabled() {
		storage, err := bootstrap.OpenStorage(ctx, bootstrap.StorageDeps{
			Storage:  cfg.Storage,
			Postgres: cfg.Postgres,
			Redis:    cfg.Redis,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if cerr := storage.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close session storage failed", "error", cerr)
			}
		}()

		services, err = bootstrap.NewServices(&bootstrap.ServiceDeps{
			Config: cfg,
			KV:     storage.KV,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("init services: %w", err)
		}
	}

	return bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting showcase console",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"storage_mode", cfg.Storage.Mode,
		"dev", cfg.IsDev,
		"enabled_services", bootstrap.GetEnabledServices(cfg))
}
