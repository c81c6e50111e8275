// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/aisboost/aisboost/internal/auth"
)

// DefaultSessionCookieName is the cookie carrying the session id.
const DefaultSessionCookieName = auth.DefaultCookieName

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"3000"`

	// Database (PostgreSQL)
	DatabaseURL    string `env:"DATABASE_URL,required"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Sessions
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"aisboost.auth"`
	SessionCacheTTL   time.Duration `env:"SESSION_CACHE_TTL" envDefault:"30s"`

	// Key material for encrypting template API keys at rest.
	TemplateSecret string `env:"TEMPLATE_SECRET,required"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Metrics: "prometheus" serves client_golang exposition, "memory" keeps
	// plain counters for single-instance deployments.
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsBackend string `env:"METRICS_BACKEND" envDefault:"prometheus"`
}

// Metrics backends accepted by METRICS_BACKEND.
const (
	MetricsBackendPrometheus = "prometheus"
	MetricsBackendMemory     = "memory"
)

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SessionCacheEnabled reports whether resolved sessions are cached in Redis.
func (c *Config) SessionCacheEnabled() bool {
	return c.SessionCacheTTL > 0
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks constraints the struct tags cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SessionCookieName) == "" {
		return errors.New("SESSION_COOKIE_NAME must not be empty")
	}
	if c.SessionCacheTTL < 0 {
		return errors.New("SESSION_CACHE_TTL must not be negative")
	}
	switch c.MetricsBackend {
	case MetricsBackendPrometheus, MetricsBackendMemory:
	default:
		return fmt.Errorf("METRICS_BACKEND must be %q or %q, got %q",
			MetricsBackendPrometheus, MetricsBackendMemory, c.MetricsBackend)
	}
	if len(c.TemplateSecret) < 16 {
		return errors.New("TEMPLATE_SECRET must be at least 16 characters")
	}
	return nil
}

// Load reads optional dotenv files, parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load(dotenvFiles ...string) (*Config, error) {
	if err := loadDotEnv(dotenvFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads each file that exists. Variables already set in the
// environment win over file values.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
