package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds session token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// StoreTimeout bounds each request's store work. The underlying
	// connection default is not relied on.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT, default=5s"`

	UploadDir string `env:"UPLOAD_DIR, default=./uploads"`

	// AdminUsername/AdminPassword seed the initial admin account at startup.
	// Seeding is skipped when the password is unset or the user already
	// exists; the public register route never grants the admin role.
	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Postgres PostgresConfig
	Redis    RedisConfig
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL, default=postgres://localhost:5432/storefront?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`

	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
// The signing secret has no default: startup must fail when it is unset.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return &cfg, nil
}
