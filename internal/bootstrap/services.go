package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/showcase-labs/showcase-console/config"
	"github.com/showcase-labs/showcase-console/internal/apiclient"
	"github.com/showcase-labs/showcase-console/internal/ports"
	"github.com/showcase-labs/showcase-console/internal/service"
	"golang.org/x/sync/errgroup"
)

// ServiceContainer holds the console's session stack.
type ServiceContainer struct {
	KV          ports.KVStore
	Persistence *service.SessionPersistence
	API         *apiclient.Client
	Credentials *service.CredentialService
	Session     *service.SessionStore
	Preferences *service.PreferenceService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config     *config.AppConfig
	KV         ports.KVStore
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewServices wires persistence, the API client, the credential service and the
// session store over one KV backend. The session store is returned unhydrated.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require config")
	}
	if deps.KV == nil {
		return ServiceContainer{}, errors.New("service deps require a KV store")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	persistence := service.NewSessionPersistence(deps.KV)

	api, err := apiclient.New(apiclient.Options{
		BaseURL:    deps.Config.API.BaseURL,
		Tokens:     persistence,
		HTTPClient: deps.HTTPClient,
		Timeout:    deps.Config.API.Timeout,
		UserAgent:  deps.Config.API.UserAgent,
		Logger:     logger.With("component", "apiclient"),
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build api client: %w", err)
	}

	credentials := service.NewCredentialService(service.CredentialServiceOptions{
		API:        api,
		Store:      persistence,
		Logger:     logger,
		RememberMe: deps.Config.API.RememberMe,
	})

	return ServiceContainer{
		KV:          deps.KV,
		Persistence: persistence,
		API:         api,
		Credentials: credentials,
		Session: service.NewSessionStore(service.SessionStoreOptions{
			Credentials: credentials,
			Persistence: persistence,
			Logger:      logger,
		}),
		Preferences: service.NewPreferenceService(deps.KV),
	}, nil
}

// ServiceOrchestrationConfig contains everything RunServicesWithShutdown starts.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for servers to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// RunServicesWithShutdown starts the enabled servers and blocks until a
// shutdown signal arrives or one of them fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers, err := buildServers(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return serve(ctx, servers, logger)
}

type namedServer struct {
	name   string
	server *http.Server
}

func buildServers(ctx context.Context, cfg *ServiceOrchestrationConfig, logger *slog.Logger) ([]namedServer, error) {
	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return nil, fmt.Errorf("determine enabled services: %w", err)
	}

	var servers []namedServer
	if enabled[config.ServiceModeDevAPI] {
		srv, err := NewDevAPIServer(cfg.Config.DevAPI, logger)
		if err != nil {
			return nil, err
		}
		servers = append(servers, namedServer{name: "devapi", server: srv})
	}
	if enabled[config.ServiceModeConsole] {
		// Restore the persisted session before the first request can reach the gate.
		if cfg.Services.Session != nil {
			cfg.Services.Session.Hydrate(ctx)
		}
		srv := NewHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
		servers = append(servers, namedServer{name: "console", server: srv})
	}
	return servers, nil
}

// serve runs every server until ctx is cancelled or one fails, then shuts all of them down.
func serve(ctx context.Context, servers []namedServer, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		g.Go(func() error {
			logger.Info("starting HTTP server", "service", s.name, "addr", s.server.Addr)
			if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", s.name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down services...")
		return shutdownAll(servers, logger)
	})

	return g.Wait()
}

func shutdownAll(servers []namedServer, logger *slog.Logger) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()

	var errs []error
	for _, s := range servers {
		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  s.server,
			Name:    s.name,
			Logger:  logger,
		}); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
