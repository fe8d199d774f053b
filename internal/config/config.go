// Package config loads SDK tool configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the environment-driven configuration for SDK tooling.
type Config struct {
	// APIURL is the REST API root.
	APIURL string `env:"SPECWORK_API_URL,default=https://api.specwork.app/v1"`

	// WSURL is the realtime websocket endpoint.
	WSURL string `env:"SPECWORK_WS_URL,default=wss://ws.specwork.app/v1"`

	// TokenPath overrides the auth token file location. Empty selects the
	// default under the user config directory.
	TokenPath string `env:"SPECWORK_TOKEN_PATH"`

	// RedisAddr enables the shared Redis cache store when set,
	// e.g. localhost:6379. Empty selects the in-memory store.
	RedisAddr     string `env:"SPECWORK_REDIS_ADDR"`
	RedisPassword string `env:"SPECWORK_REDIS_PASSWORD"`

	// CachePolicyPath points at an optional yaml tier-override file.
	CachePolicyPath string `env:"SPECWORK_CACHE_POLICY"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `env:"SPECWORK_LOG_LEVEL,default=info"`

	// LogPretty switches from JSON to console log output.
	LogPretty bool `env:"SPECWORK_LOG_PRETTY,default=false"`
}

// Load reads .env (when present) and decodes the environment. A missing
// .env file is not an error; explicit environment variables win over it.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}
