package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"user_backend/internal/app/di"
	"user_backend/internal/app/router"
	"user_backend/internal/platform/config"
	"user_backend/internal/platform/db"
	jwtmw "user_backend/internal/platform/jwt"
	platformredis "user_backend/internal/platform/redis"
)

// shutdownTimeout bounds how long in-flight requests may take after SIGTERM.
const shutdownTimeout = 10 * time.Second

type serverConfig struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	var cfg serverConfig
	if err := config.ParseEnv(&cfg); err != nil {
		slog.Error("failed to load server config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg serverConfig) error {
	jwtCfg, err := jwtmw.LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load jwt config: %w", err)
	}
	dbCfg, err := db.LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}
	appCfg, err := di.LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}

	// db
	gdb, err := db.Open(dbCfg)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// SQLite is a local development store and is always migrated.
	if dbCfg.RunMigrations || dbCfg.Driver == db.DriverSQLite {
		if err := db.Migrate(ctx, gdb, dbCfg.Driver); err != nil {
			return err
		}
		slog.Info("database migrations applied", "driver", dbCfg.Driver)
	}

	// Redis
	var rdb *redisv9.Client
	if appCfg.UsesRedis() {
		redisCfg, err := platformredis.LoadConfigFromEnv()
		if err != nil {
			return fmt.Errorf("load redis config: %w", err)
		}
		if tmp, err := platformredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	container, err := di.NewContainer(gdb, di.NewRefreshTokenStore(appCfg.RefreshTokenStore, rdb, gdb), jwtCfg)
	if err != nil {
		return err
	}

	// ルータ生成
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router.NewRouter(container, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "refresh_tokens", jwtCfg.IssueRefreshToken)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
