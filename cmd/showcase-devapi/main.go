package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/showcase-labs/showcase-console/config"
	"github.com/showcase-labs/showcase-console/internal/bootstrap"
)

// showcase-devapi runs only the development backend, whatever SERVICES says.
func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	logger := bootstrap.InitLogger(cfg.Log)
	if !cfg.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg.Services = string(config.ServiceModeDevAPI)
	if err := bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config: &cfg,
		Logger: logger,
	}); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}
