package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the API service.
// Loaded once at startup from environment variables.
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"http://localhost:3003"`

	// AnchorDelayMs simulates on-chain confirmation latency in the stub
	// ledger client. Kept configurable so tests can run with zero delay.
	AnchorDelayMs int `envconfig:"ANCHOR_DELAY_MS" default:"1500"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return cfg, nil
}
