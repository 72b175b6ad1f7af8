package app

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Session store drivers.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	APIBaseURL string `env:"PROPAUTH_API_BASE_URL" env-default:"http://localhost:8080/api"`

	Env       string `env:"ENV" env-default:"dev"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"warn"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`

	Store     string `env:"PROPAUTH_STORE" env-default:"file"`
	StorePath string `env:"PROPAUTH_STORE_PATH"` // file or sqlite path; defaults under the user config dir

	RedisAddr     string `env:"PROPAUTH_REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"PROPAUTH_REDIS_PASSWORD"`
	RedisDB       int    `env:"PROPAUTH_REDIS_DB" env-default:"0"`
	RedisPrefix   string `env:"PROPAUTH_REDIS_PREFIX" env-default:"propauth"`

	RequestTimeout time.Duration `env:"PROPAUTH_REQUEST_TIMEOUT" env-default:"10s"`
	RateLimit      float64       `env:"PROPAUTH_RATE_LIMIT" env-default:"0"` // requests per second, 0 disables
	RateBurst      int           `env:"PROPAUTH_RATE_BURST" env-default:"1"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("PROPAUTH_STORE: unknown driver %q", c.Store)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("PROPAUTH_API_BASE_URL must be set")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("PROPAUTH_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("PROPAUTH_RATE_LIMIT must not be negative")
	}
	return nil
}
