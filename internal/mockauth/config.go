package mockauth

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port                int           `env:"PORT" env-default:"8080"`
	JWTSecret           string        `env:"MOCKAUTH_JWT_SECRET"` // random per process when empty
	Issuer              string        `env:"MOCKAUTH_ISSUER" env-default:"propauth-mock"`
	TokenTTL            time.Duration `env:"MOCKAUTH_TOKEN_TTL" env-default:"24h"`
	ResetURL            string        `env:"MOCKAUTH_RESET_URL" env-default:"http://localhost:5173/reset-password"`
	Env                 string        `env:"ENV" env-default:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" env-default:"info"`
	LogFormat           string        `env:"LOG_FORMAT" env-default:"json"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read mockauth config: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("MOCKAUTH_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
