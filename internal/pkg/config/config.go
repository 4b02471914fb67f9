package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// EnvFile is loaded before the process environment is read. Variables
// already set in the environment take precedence over the file.
const EnvFile = "config.env"

const passwordPlaceholder = "<PASSWORD>"

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"NODE_ENV,  default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth        AuthConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET,     required"`
	JWTTTL     time.Duration `env:"JWT_EXPIRES_IN, default=168h"`
	BcryptCost int           `env:"BCRYPT_COST,    default=10"`
}

type MongoConfig struct {
	URI      string `env:"DATABASE,          default=mongodb://localhost:27017"`
	Password string `env:"DATABASE_PASSWORD"`
	Database string `env:"DATABASE_NAME,     default=expenser"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type IdempotencyConfig struct {
	TTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// IsProduction reports whether NODE_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// ConnectionString returns the Mongo URI with the password placeholder filled in.
func (m MongoConfig) ConnectionString() string {
	return strings.ReplaceAll(m.URI, passwordPlaceholder, m.Password)
}

// Load reads config.env (when present) and then the environment.
func Load() *Config {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read %s: %v", EnvFile, err))
	}

	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process builds a Config from the given lookuper.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", cfg.Auth.JWTTTL)
	}
	return &cfg, nil
}
