package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/showcase-labs/showcase-console/config"
	"github.com/showcase-labs/showcase-console/internal/adapters/filekv"
	"github.com/showcase-labs/showcase-console/internal/adapters/memory"
	"github.com/showcase-labs/showcase-console/internal/adapters/postgres"
	redisadapter "github.com/showcase-labs/showcase-console/internal/adapters/redis"
	"github.com/showcase-labs/showcase-console/internal/adapters/sqlite"
	"github.com/showcase-labs/showcase-console/internal/ports"
)

// StorageDeps groups inputs for OpenStorage.
type StorageDeps struct {
	Storage  config.StorageConfig
	Postgres config.DBConfig
	Redis    config.RedisConfig
	Logger   *slog.Logger
}

// Storage is the opened key-value backend plus whatever must be released on shutdown.
type Storage struct {
	KV   ports.KVStore
	Mode config.StorageMode

	closers []func() error
}

// Close releases backend connections. Safe to call on a nil Storage.
func (s *Storage) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenStorage opens the backend selected by STORAGE_MODE.
func OpenStorage(ctx context.Context, deps StorageDeps) (*Storage, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	st := &Storage{Mode: deps.Storage.Mode}
	switch deps.Storage.Mode {
	case config.StorageModeMemory:
		st.KV = memory.NewKVStore()

	case config.StorageModeFile:
		kv, err := filekv.New(deps.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		st.KV = kv

	case config.StorageModeSQLite:
		kv, err := sqlite.Open(ctx, deps.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		st.KV = kv
		st.closers = append(st.closers, kv.Close)

	case config.StorageModeRedis:
		client, err := openRedis(ctx, deps.Redis, logger)
		if err != nil {
			return nil, err
		}
		st.KV = redisadapter.NewKVStore(client, redisadapter.KVStoreOptions{
			Prefix: deps.Storage.RedisPrefix,
			TTL:    deps.Storage.RedisTTL,
		})
		st.closers = append(st.closers, client.Close)

	case config.StorageModePostgres:
		db, err := openPostgres(ctx, deps.Postgres, logger)
		if err != nil {
			return nil, err
		}
		st.KV = postgres.NewKVStore(db)
		st.closers = append(st.closers, db.Close)

	default:
		return nil, fmt.Errorf("unsupported storage mode %q", deps.Storage.Mode)
	}

	logger.InfoContext(ctx, "session storage ready", "mode", st.Mode, "path", deps.Storage.Path)
	return st, nil
}
