package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	require.Equal(t, StoreFile, cfg.Store)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "propauth", cfg.RedisPrefix)
	require.Zero(t, cfg.RateLimit)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PROPAUTH_API_BASE_URL", "https://auth.example.com/api")
	t.Setenv("PROPAUTH_STORE", "redis")
	t.Setenv("PROPAUTH_REDIS_DB", "3")
	t.Setenv("PROPAUTH_REQUEST_TIMEOUT", "2s")
	t.Setenv("PROPAUTH_RATE_LIMIT", "5.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://auth.example.com/api", cfg.APIBaseURL)
	require.Equal(t, StoreRedis, cfg.Store)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, 2*time.Second, cfg.RequestTimeout)
	require.InDelta(t, 5.5, cfg.RateLimit, 1e-9)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{APIBaseURL: "http://x/api", Store: StoreMemory, RequestTimeout: time.Second}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Store = "etcd" }},
		{"no base url", func(c *Config) { c.APIBaseURL = "" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
