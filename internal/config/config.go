// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all process-wide configuration. It is populated once at
// startup and never mutated afterwards — the JWT secret in particular is
// the only piece of shared state beyond the database pool.
type Config struct {
	Port       int    `env:"PORT" envDefault:"3003"`
	DBPath     string `env:"DB_PATH" envDefault:"data/bloglist.db"`
	Secret     string `env:"SECRET"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"12"`
}

// Load parses the environment into a Config and validates required fields.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.Secret == "" {
		return nil, errors.New("config: SECRET must be set")
	}

	return &cfg, nil
}
