package jwtmw

import (
	"time"

	"user_backend/internal/platform/config"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Config controls token signing and lifetimes.
type Config struct {
	Secret     string          `env:"JWT_SECRET,notEmpty"`
	AccessTTL  config.Duration `env:"JWT_EXPIRES_IN"         envDefault:"1h"`
	RefreshTTL config.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"7d"`

	// IssueRefreshToken selects the stateful login variant, which also issues
	// a refresh token and stores its hash. When false, login only returns an access token.
	IssueRefreshToken bool `env:"JWT_ISSUE_REFRESH_TOKEN" envDefault:"true"`
}

// LoadConfigFromEnv reads the token configuration. JWT_SECRET must be set.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = config.Duration(time.Hour)
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = config.Duration(7 * 24 * time.Hour)
	}
	return cfg, nil
}
