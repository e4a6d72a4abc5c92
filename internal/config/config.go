package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                   int    `env:"PORT" envDefault:"8080"`
	DatabaseURL            string `env:"DATABASE_URL,required"`
	RedisURL               string `env:"REDIS_URL,required"`
	LogLevel               string `env:"LOG_LEVEL" envDefault:"info"`
	TokenIssuer            string `env:"TOKEN_ISSUER" envDefault:"food-ordering-api"`
	PasswordHashIterations int    `env:"PASSWORD_HASH_ITERATIONS" envDefault:"1000"`
	LoginRateLimitPerMin   int    `env:"LOGIN_RATE_LIMIT_PER_MIN" envDefault:"10"`
	AutoMigrate            bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	CORSAllowedOrigin      string `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	Environment            string `env:"APP_ENV" envDefault:"development"`
}

// MigrateConfig is the subset needed by the migrate command.
type MigrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) Validate(isProduction bool) error {
	if c.PasswordHashIterations <= 0 {
		return fmt.Errorf("PASSWORD_HASH_ITERATIONS must be positive, got %d", c.PasswordHashIterations)
	}
	if c.LoginRateLimitPerMin <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT_PER_MIN must be positive, got %d", c.LoginRateLimitPerMin)
	}
	if strings.TrimSpace(c.TokenIssuer) == "" {
		return fmt.Errorf("TOKEN_ISSUER must not be empty")
	}

	if isProduction {
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
		if c.CORSAllowedOrigin == "*" {
			log.Warn().Msg("CORS_ALLOWED_ORIGIN is * in production: any origin can read the access-token header")
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func LoadMigrate() (*MigrateConfig, error) {
	var cfg MigrateConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
