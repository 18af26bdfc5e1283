// Package config handles process configuration: defaults, an optional .env
// file, and environment variable overrides.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the NutriTrack server.
type Config struct {
	HTTPAddr    string `env:"NUTRITRACK_HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN string `env:"NUTRITRACK_DATABASE_DSN" envDefault:"file:nutritrack.db?cache=shared"`

	// SigningKey is the HMAC secret used to sign session tokens. The default
	// is for development only.
	SigningKey string `env:"NUTRITRACK_SIGNING_KEY" envDefault:"nutritrack-dev-signing-key"`

	// TokenExpiration is the session token lifetime in hours. A value of 0
	// issues tokens without an expiry claim, matching the legacy behavior.
	TokenExpiration int `env:"NUTRITRACK_TOKEN_EXPIRATION" envDefault:"72"`

	// BcryptCost is the bcrypt work factor applied to new password hashes.
	BcryptCost int `env:"NUTRITRACK_BCRYPT_COST" envDefault:"10"`

	// AutoAuthOnSignup controls whether signup responses include a session
	// token or require a separate signin.
	AutoAuthOnSignup bool `env:"NUTRITRACK_AUTO_AUTH_ON_SIGNUP" envDefault:"true"`

	Debug bool `env:"NUTRITRACK_DEBUG" envDefault:"false"`
}

// Load builds a Config from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env files are fine, real values come from the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
