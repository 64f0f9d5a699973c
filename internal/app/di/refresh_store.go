// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "user_backend/internal/feature/auth/adapters"
	"user_backend/internal/feature/auth/usecase"
	"user_backend/internal/platform/config"
	"user_backend/internal/platform/tokenstore"
)

// Refresh token store backends.
const (
	StoreDatabase = "database"
	StoreRedis    = "redis"
)

// Config selects optional infrastructure.
type Config struct {
	RefreshTokenStore string `env:"REFRESH_TOKEN_STORE" envDefault:"database"`
}

// UsesRedis reports whether the configuration needs a Redis connection.
func (c Config) UsesRedis() bool {
	return c.RefreshTokenStore == StoreRedis
}

// LoadConfigFromEnv reads Config from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	switch cfg.RefreshTokenStore {
	case StoreDatabase, StoreRedis:
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("unsupported REFRESH_TOKEN_STORE %q", cfg.RefreshTokenStore)
	}
}

// NewRefreshTokenStore creates a RefreshTokenStore implementation.
// The Redis store is used when requested and a client is available.
// Otherwise, it falls back to the users table.
func NewRefreshTokenStore(kind string, rdb *redis.Client, db *gorm.DB) usecase.RefreshTokenStore {
	if kind == StoreRedis {
		if rdb != nil {
			return tokenstore.NewRefreshRedis(rdb, tokenstore.DefaultPrefix)
		}
		slog.Warn("Redis unavailable, storing refresh tokens in the database")
	}
	return authadapters.NewRefreshTokenGorm(db)
}
