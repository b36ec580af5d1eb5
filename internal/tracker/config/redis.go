package config

import (
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host            string        `yaml:"host" env:"TRACKER_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"TRACKER_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"TRACKER_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"TRACKER_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"TRACKER_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"TRACKER_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"TRACKER_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"TRACKER_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"TRACKER_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"TRACKER_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"TRACKER_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	DefaultTTL      time.Duration `yaml:"default_ttl" env:"TRACKER_REDIS_DEFAULT_TTL" env-default:"15m"`
	TokenCacheTTL   time.Duration `yaml:"token_cache_ttl" env:"TRACKER_REDIS_TOKEN_CACHE_TTL" env-default:"5m"`
	AdminStatsTTL   time.Duration `yaml:"admin_stats_ttl" env:"TRACKER_REDIS_ADMIN_STATS_TTL" env-default:"1m"`
}

// GetAddressString возвращает адрес Redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
