package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all externally injected settings. Every field comes from
// the environment; secrets are never hardcoded.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"movie-shelf.db"`

	JWTSecret  string `env:"JWT_SECRET,required"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"12"`

	OMDBAPIKey  string        `env:"OMDB_API_KEY,required"`
	OMDBBaseURL string        `env:"OMDB_BASE_URL" envDefault:"https://www.omdbapi.com/"`
	OMDBTimeout time.Duration `env:"OMDB_TIMEOUT" envDefault:"10s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Load parses configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 14 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cfg.BcryptCost)
	}

	return cfg, nil
}
