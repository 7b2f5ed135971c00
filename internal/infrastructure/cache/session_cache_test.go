package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-service/internal/domain/entities"
)

func TestSessionCacheWithoutClientDegradesToMiss(t *testing.T) {
	cache := NewSessionCache(nil, time.Minute)
	ctx := context.Background()

	user := &entities.User{ID: 1, Username: "deactivated", Email: "d@example.com"}
	require.NoError(t, cache.Put(ctx, user))

	got, err := cache.Get(ctx, "deactivated")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// testRedis connects to the instance named by REDIS_TEST_ADDR, skipping the
// test when none is available.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 9})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis at %s not reachable: %v", addr, err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestSessionCacheRoundTrip(t *testing.T) {
	cache := NewSessionCache(testRedis(t), time.Minute)
	ctx := context.Background()

	user := &entities.User{
		ID:             7,
		Username:       "iryna",
		Email:          "iryna@example.com",
		Role:           entities.RoleAdmin,
		Avatar:         "https://example.com/a.png",
		Confirmed:      true,
		HashedPassword: "$2a$10$secret",
	}
	require.NoError(t, cache.Put(ctx, user))

	got, err := cache.Get(ctx, "iryna")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Role, got.Role)
	assert.Equal(t, user.Avatar, got.Avatar)
	assert.True(t, got.Confirmed)
	assert.Empty(t, got.HashedPassword, "password hash must not survive the cache")
}

func TestSessionCacheExpiredEntryIsMiss(t *testing.T) {
	cache := NewSessionCache(testRedis(t), 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, &entities.User{ID: 2, Username: "ephemeral"}))
	time.Sleep(100 * time.Millisecond)

	got, err := cache.Get(ctx, "ephemeral")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionCacheCorruptEntryIsMiss(t *testing.T) {
	client := testRedis(t)
	cache := NewSessionCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, sessionKey("broken"), "{not json", time.Minute).Err())

	got, err := cache.Get(ctx, "broken")
	require.NoError(t, err)
	assert.Nil(t, got)
}
