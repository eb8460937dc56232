package testutil

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTestRedisDB = 15

// RedisDB is the database index tests write to, from TEST_REDIS_DB.
func RedisDB() int {
	if n, err := strconv.Atoi(envOr("TEST_REDIS_DB", "")); err == nil && n >= 0 {
		return n
	}
	return defaultTestRedisDB
}

// SetupTestRedis returns a client on an emptied test database at TEST_REDIS_ADDR
// (default localhost:6379). The test is skipped when Redis is unreachable,
// unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()
	addr := envOr("TEST_REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{Addr: addr, DB: RedisDB()})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		skipOrFail(t, envBool("TEST_REQUIRE_REDIS"), "redis not available at %s: %v", addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
