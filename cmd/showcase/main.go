package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/showcase-labs/showcase-console/config"
	"github.com/showcase-labs/showcase-console/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
	In     io.Reader

	storage  *bootstrap.Storage
	services *bootstrap.ServiceContainer
}

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			slog.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			slog.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	// Keep stdout for command output; logs go to stderr.
	logger := bootstrap.InitLoggerTo(os.Stderr, cfg.Log)

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
		In:     os.Stdin,
	}
	runErr := cmd.run(cmdCtx, os.Args[2:])
	if closeErr := cmdCtx.Close(); closeErr != nil {
		logger.Warn("close session storage failed", "error", closeErr)
	}
	if runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in with email and password",
			run:         runLogin,
		},
		"signup": {
			name:        "signup",
			description: "Create an account and log in",
			run:         runSignup,
		},
		"logout": {
			name:        "logout",
			description: "Forget the stored session token",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Fetch the current user from the backend",
			run:         runWhoami,
		},
		"status": {
			name:        "status",
			description: "Show the locally stored session",
			run:         runStatus,
		},
		"profile": {
			name:        "profile",
			description: "Edit the locally cached profile",
			run:         runProfile,
		},
		"reset-password": {
			name:        "reset-password",
			description: "Request a password reset email",
			run:         runResetPassword,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: showcase <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// Services opens the configured storage and hydrates the session on first use.
func (c *commandContext) Services() (*bootstrap.ServiceContainer, error) {
	if c.services != nil {
		return c.services, nil
	}
	storage, err := bootstrap.OpenStorage(c.Ctx, bootstrap.StorageDeps{
		Storage:  c.Config.Storage,
		Postgres: c.Config.Postgres,
		Redis:    c.Config.Redis,
		Logger:   c.Logger,
	})
	if err != nil {
		return nil, err
	}
	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &c.Config,
		KV:     storage.KV,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("init services: %w", err), storage.Close())
	}
	services.Session.Hydrate(c.Ctx)

	c.storage = storage
	c.services = &services
	return c.services, nil
}

// Close releases the storage opened by Services.
func (c *commandContext) Close() error {
	err := c.storage.Close()
	c.storage = nil
	c.services = nil
	return err
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
