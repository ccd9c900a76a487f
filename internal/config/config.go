package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"3000"`

	// Database configuration
	DBType            string `envconfig:"DB_TYPE" default:"postgres"` // mysql, postgres, sqlite, sqlite-pure, sqlserver
	DBHost            string `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string `envconfig:"DB_PORT" default:"5432"`
	DBDatabase        string `envconfig:"DB_DATABASE"`
	DBUser            string `envconfig:"DB_USER"`
	DBPassword        string `envconfig:"DB_PASSWORD"`
	DBConnectionLimit int    `envconfig:"DB_CONNECTION_LIMIT" default:"5"`
	DBSlowQueryMS     int    `envconfig:"DB_SLOW_QUERY_MS" default:"200"`

	// Cache configuration
	RedisURL     string `envconfig:"REDIS_URL"`
	CacheEnabled bool   `envconfig:"CACHE_ENABLED" default:"false"`

	// Authorizer configuration
	AuthzURL      string `envconfig:"AUTHZ_URL"`
	AuthzClientID string `envconfig:"AUTHZ_CLIENT_ID"`
	AuthzRedirect string `envconfig:"AUTHZ_REDIRECT_URL" default:"http://localhost:3000"`

	// Catalog behavior
	AnchorAppSlug  string `envconfig:"ANCHOR_APP_SLUG" default:"chrry"`
	MaxExpandDepth int    `envconfig:"MAX_EXPAND_DEPTH" default:"2"`
	ExpandPageSize int    `envconfig:"EXPAND_PAGE_SIZE" default:"50"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile loads an .env file into the environment, then loads configuration.
// Variables already present in the environment win over the file.
func LoadFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	return Load()
}

// Validate checks required fields and value ranges
func (cfg *Config) Validate() error {
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if !cfg.IsSQLite() && cfg.DBUser == "" {
		return fmt.Errorf("DB_USER is required for DB_TYPE %s", cfg.DBType)
	}
	if cfg.CacheEnabled && cfg.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when CACHE_ENABLED is set")
	}
	if cfg.AuthzURL != "" && cfg.AuthzClientID == "" {
		return fmt.Errorf("AUTHZ_CLIENT_ID is required when AUTHZ_URL is set")
	}
	if cfg.MaxExpandDepth < 0 {
		return fmt.Errorf("MAX_EXPAND_DEPTH must not be negative")
	}
	if cfg.ExpandPageSize < 1 {
		return fmt.Errorf("EXPAND_PAGE_SIZE must be at least 1")
	}
	return nil
}

// IsSQLite reports whether the configured database is a SQLite file
func (cfg *Config) IsSQLite() bool {
	return cfg.DBType == "sqlite" || cfg.DBType == "sqlite-pure"
}
