package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/showcase-labs/showcase-console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

// uniquePrefix isolates each test's keys inside the shared test database.
func uniquePrefix() string {
	return "test:" + uuid.NewString() + ":"
}

func TestKVStore_SetAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewKVStore(client, KVStoreOptions{Prefix: uniquePrefix()})
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "token", "T"))
	v, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T", v)
}

func TestKVStore_PrefixIsolation(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	a := NewKVStore(client, KVStoreOptions{Prefix: uniquePrefix()})
	b := NewKVStore(client, KVStoreOptions{Prefix: uniquePrefix()})

	require.NoError(t, a.Set(ctx, "token", "A"))
	_, ok, err := b.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewKVStore(client, KVStoreOptions{Prefix: uniquePrefix()})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "token", "T"))
	require.NoError(t, store.Set(ctx, "user", "{}"))
	require.NoError(t, store.Set(ctx, "admin-theme", "dark"))

	require.NoError(t, store.Delete(ctx, "token", "user"))
	_, ok, _ := store.Get(ctx, "token")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "user")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "admin-theme")
	assert.True(t, ok)

	// Deleting nothing is a no-op
	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Delete(ctx, ""))
}

func TestKVStore_TTL(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	prefix := uniquePrefix()
	store := NewKVStore(client, KVStoreOptions{Prefix: prefix, TTL: time.Minute})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "token", "T"))
	ttl, err := client.TTL(ctx, prefix+"token").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestKVStore_EmptyKey(t *testing.T) {
	store := NewKVStore(nil, KVStoreOptions{})
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
	require.Error(t, store.Set(ctx, "", "v"))
	assert.Equal(t, DefaultPrefix, store.prefix)
}
