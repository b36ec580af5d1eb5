package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leisurelog/internal/tracker/adapters/cache"
	"leisurelog/internal/tracker/config"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	host, portStr, ok := strings.Cut(s.Addr(), ":")
	require.True(t, ok)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:            host,
		Port:            port,
		DB:              0,
		ConnectTimeout:  5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolSize:        10,
		MinIdle:         2,
		IdleTimeout:     5 * time.Minute,
		MaxConnLifetime: time.Hour,
		DefaultTTL:      15 * time.Minute,
		TokenCacheTTL:   5 * time.Minute,
		AdminStatsTTL:   time.Minute,
	}

	return s, cfg
}

func TestNewRedisCache_Success(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.NoError(t, err)
	require.NotNil(t, redisCache)
	assert.NoError(t, redisCache.Close())
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "127.0.0.1",
		Port:           1,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.Error(t, err)
	assert.Nil(t, redisCache)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_SetGet(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		_ = redisCache.Close()
	}()

	require.NoError(t, redisCache.Set(ctx, "token:abc", "identity-json", time.Minute))

	value, err := redisCache.Get(ctx, "token:abc")
	require.NoError(t, err)
	assert.Equal(t, "identity-json", value)

	// TTL проставлен в хранилище.
	assert.Greater(t, s.TTL("token:abc"), time.Duration(0))
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		_ = redisCache.Close()
	}()

	value, err := redisCache.Get(ctx, "missing")

	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_SetZeroTTLUsesDefault(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		_ = redisCache.Close()
	}()

	require.NoError(t, redisCache.Set(ctx, "admin:users-stats", "[]", 0))

	assert.Equal(t, cfg.DefaultTTL, s.TTL("admin:users-stats"))
}

func TestRedisCache_Delete(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		_ = redisCache.Close()
	}()

	require.NoError(t, redisCache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, redisCache.Delete(ctx, "key"))

	value, err := redisCache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_ExpiredKey(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		_ = redisCache.Close()
	}()

	require.NoError(t, redisCache.Set(ctx, "short-lived", "value", time.Second))

	s.FastForward(2 * time.Second)

	value, err := redisCache.Get(ctx, "short-lived")
	require.NoError(t, err)
	assert.Empty(t, value)
}
