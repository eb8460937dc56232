package redis

// Package redis provides the Redis-backed key-value store for console sessions.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/showcase-labs/showcase-console/internal/ports"
)

// DefaultPrefix namespaces console keys inside a shared Redis.
const DefaultPrefix = "showcase:console:"

var _ ports.KVStore = (*KVStore)(nil)

// KVStore is a Redis-based key-value store. Keys never expire unless a TTL is configured.
type KVStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// KVStoreOptions groups optional settings for NewKVStore.
type KVStoreOptions struct {
	Prefix string
	// TTL of zero keeps keys until they are deleted.
	TTL time.Duration
}

// NewKVStore creates a new Redis-based key-value store.
func NewKVStore(client redis.UniversalClient, opts KVStoreOptions) *KVStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KVStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}

	data, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes keys in one DEL so a session clear is atomic on the server.
func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil // Nothing to delete
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			full = append(full, s.prefix+k)
		}
	}
	if len(full) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
