// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Supported datastore drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	// ErrEmptySecret is returned when TOKEN_SECRET is set but blank.
	ErrEmptySecret = errors.New("TOKEN_SECRET must not be empty")
	// ErrUnknownDriver is returned for an unsupported DATABASE_DRIVER.
	ErrUnknownDriver = errors.New("DATABASE_DRIVER must be postgres or sqlite")
	// ErrMissingDatabaseURL is returned when the postgres driver has no DSN.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres driver")
	// ErrRevocationNeedsRedis is returned when revocation is enabled without Redis.
	ErrRevocationNeedsRedis = errors.New("TOKEN_REVOCATION_ENABLED requires REDIS_URL")
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Token signing
	TokenSecret            string        `env:"TOKEN_SECRET,required"`
	TokenTTL               time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	TokenLeeway            time.Duration `env:"TOKEN_LEEWAY" envDefault:"0s"`
	TokenRevocationEnabled bool          `env:"TOKEN_REVOCATION_ENABLED" envDefault:"false"`

	// Datastore
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"full9.db"`

	// Cache (Redis). Optional; an in-process limiter is used when empty.
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting
	LoginRatePerMinute   int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
	LoginBurst           int `env:"LOGIN_BURST" envDefault:"5"`
	InquiryRatePerMinute int `env:"INQUIRY_RATE_PER_MINUTE" envDefault:"6"`
	InquiryBurst         int `env:"INQUIRY_BURST" envDefault:"3"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://full9.co.th,https://admin.full9.co.th")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Object storage for uploaded images (S3 compatible). Disabled when endpoint is empty.
	StorageEndpoint  string `env:"STORAGE_ENDPOINT"`
	StorageAccessKey string `env:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `env:"STORAGE_SECRET_KEY"`
	StorageBucket    string `env:"STORAGE_BUCKET" envDefault:"full9-uploads"`
	StorageUseSSL    bool   `env:"STORAGE_USE_SSL" envDefault:"true"`
	StoragePublicURL string `env:"STORAGE_PUBLIC_URL"`
	UploadMaxBytes   int64  `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`

	// Inquiry notification webhook. Disabled when URL is empty.
	NotifyWebhookURL    string `env:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookSecret string `env:"NOTIFY_WEBHOOK_SECRET"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// StorageEnabled reports whether image uploads are configured.
func (c *Config) StorageEnabled() bool {
	return c.StorageEndpoint != ""
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

// Validate checks cross-field requirements that struct tags cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TokenSecret) == "" {
		return ErrEmptySecret
	}

	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DatabaseDriver)
	}

	if c.TokenRevocationEnabled && c.RedisURL == "" {
		return ErrRevocationNeedsRedis
	}
	return nil
}

// Load parses environment variables and returns a validated Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
