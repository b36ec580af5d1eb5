// Package cache содержит Redis-реализацию кэша для токенов
// и административных агрегатов.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/config"
	"leisurelog/internal/tracker/ports/services"
	"leisurelog/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrConnectRedis = "failed to connect to redis"
	ErrGetValue     = "failed to get value from redis"
	ErrSetValue     = "failed to set value in redis"
	ErrDeleteValue  = "failed to delete value from redis"
	ErrCloseRedis   = "failed to close redis connection"
)

// RedisCache реализует services.Cache поверх redis.Client.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// clientOptions собирает настройки redis клиента из конфигурации.
func clientOptions(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:            cfg.GetAddressString(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	}
}

// NewRedisCache создает кэш и проверяет доступность Redis.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (services.Cache, error) {
	client := redis.NewClient(clientOptions(cfg))

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConnectRedis, err)
	}

	logger.Log(ctx).Info(ctx, "connected to Redis", zap.String("address", cfg.GetAddressString()))

	return &RedisCache{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

// Get возвращает значение по ключу. Отсутствующий ключ не является
// ошибкой и возвращает пустую строку.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", nil
	case err != nil:
		logger.Log(ctx).Error(ctx, ErrGetValue, zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrGetValue, err)
	}

	return value, nil
}

// Set сохраняет значение с заданным временем жизни.
// Нулевой ttl заменяется временем жизни по умолчанию из конфигурации.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrSetValue, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSetValue, err)
	}

	return nil
}

// Delete удаляет значение по ключу.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrDeleteValue, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteValue, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrCloseRedis, err)
	}
	return nil
}
