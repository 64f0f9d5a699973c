// Package db opens the relational store and applies its schema.
package db

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"user_backend/internal/platform/config"
)

// Supported values of DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds the database connection settings.
type Config struct {
	Driver       string `env:"DATABASE_DRIVER"   envDefault:"postgres"`
	User         string `env:"DATABASE_USER"`
	Password     string `env:"DATABASE_PASSWORD"`
	Name         string `env:"DATABASE_NAME"     envDefault:"users"`
	Host         string `env:"DATABASE_HOST"     envDefault:"localhost"`
	Port         string `env:"DATABASE_PORT"     envDefault:"5432"`
	SSLMode      string `env:"DATABASE_SSLMODE"  envDefault:"disable"`
	InstanceName string `env:"INSTANCE_CONNECTION_NAME"`

	ConnectTimeout config.Duration `env:"DATABASE_CONNECT_TIMEOUT" envDefault:"60s"`
	RunMigrations  bool            `env:"RUN_MIGRATIONS"`
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads the database configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BuildDSN returns a PostgreSQL connection URL. When InstanceName is set the
// Cloud SQL unix socket is used instead of Host/Port.
func BuildDSN(cfg Config) string {
	q := url.Values{}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Path:   "/" + cfg.Name,
	}
	if cfg.InstanceName != "" {
		q.Set("host", "/cloudsql/"+cfg.InstanceName)
	} else {
		u.Host = net.JoinHostPort(cfg.Host, cfg.Port)
	}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Name), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("open sqlite %q: %w", cfg.Name, err)
		}
		return db, nil
	case DriverPostgres:
		return ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout.Std(), func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormConfig())
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// gormConfig enables driver error translation so adapters can match
// gorm.ErrDuplicatedKey regardless of the dialect.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}
