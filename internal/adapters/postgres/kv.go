package postgres

// Package postgres provides a PostgreSQL key-value backend so several console
// hosts can share one persisted session.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/showcase-labs/showcase-console/internal/migrate"
	"github.com/showcase-labs/showcase-console/internal/ports"

	// Register the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ ports.KVStore = (*KVStore)(nil)

// ErrSchemaMissing is returned when console_kv does not exist; run Migrate first.
var ErrSchemaMissing = errors.New("console_kv table is missing")

// ErrUnavailable wraps connection-class failures.
var ErrUnavailable = errors.New("postgres unavailable")

// KVStore implements ports.KVStore on the console_kv table.
type KVStore struct {
	db *sql.DB
}

// NewKVStore wraps an open pool. The caller owns db.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Migrate applies the console schema.
func (s *KVStore) Migrate(ctx context.Context) error {
	if err := migrate.Run(ctx, s.db, migrate.Postgres); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM console_kv WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify("get", err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO console_kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return classify("set", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM console_kv WHERE key = ANY($1)`, keys); err != nil {
		return classify("delete", err)
	}
	return nil
}

func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UndefinedTable:
			return fmt.Errorf("postgres %s: %w", op, errors.Join(ErrSchemaMissing, err))
		case pgerrcode.IsConnectionException(pgErr.Code), pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow:
			return fmt.Errorf("postgres %s: %w", op, errors.Join(ErrUnavailable, err))
		}
	}
	return fmt.Errorf("postgres %s: %w", op, err)
}
