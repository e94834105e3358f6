package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLimiterFixedWindow(t *testing.T) {
	client := setupRedis(t)
	limiter := NewRedisLimiter(client, 2, 60)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Независимый ключ
	allowed, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiterSetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := NewRedisLimiter(client, 5, 30)
	_, err := limiter.Allow(context.Background(), "user-1")
	require.NoError(t, err)

	ttl := mr.TTL("rate_limit:user-1")
	assert.Greater(t, ttl.Seconds(), 0.0)
}

func TestRedisLimiterNilClient(t *testing.T) {
	limiter := NewRedisLimiter(nil, 5, 60)
	_, err := limiter.Allow(context.Background(), "user-1")
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	client := setupRedis(t)
	require.NoError(t, Ping(context.Background(), client))
}
