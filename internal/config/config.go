package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the assistant service.
// Environment variables are parsed from the FOCUSFLOW_ prefix.
// Example: FOCUSFLOW_HTTP_PORT, FOCUSFLOW_DB_DRIVER.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"11500"`

	// Thread store backend: sqlite (durable) or memory (volatile).
	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Number of store attempts before engaging the sticky in-memory fallback.
	StoreMaxAttempts int `envconfig:"STORE_MAX_ATTEMPTS" default:"3"`

	// Per-thread message cap applied when formatting history for a prompt.
	HistoryWindow int `envconfig:"HISTORY_WINDOW" default:"10"`

	// Model invocation (OpenAI-compatible chat completions endpoint).
	ModelBaseURL     string        `envconfig:"MODEL_BASE_URL" default:"https://api.openai.com"`
	ModelName        string        `envconfig:"MODEL_NAME" default:"gpt-4o"`
	ModelAPIKey      string        `envconfig:"MODEL_API_KEY" default:""`
	ModelTimeout     time.Duration `envconfig:"MODEL_TIMEOUT" default:"60s"`
	ModelTemperature float64       `envconfig:"MODEL_TEMPERATURE" default:"0.2"`
}

// ResolveDefaults validates the driver selection and derives the SQLite path
// when unset.
func (c *Config) ResolveDefaults() error {
	allowedDB := map[string]bool{"sqlite": true, "memory": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory for SQLITE_PATH: %w", err)
		}
		c.SQLitePath = filepath.Join(home, ".focusflow", "focusflow.db")
	}
	if c.StoreMaxAttempts < 1 {
		return fmt.Errorf("STORE_MAX_ATTEMPTS must be >= 1, got %d", c.StoreMaxAttempts)
	}
	if c.HistoryWindow < 1 {
		return fmt.Errorf("HISTORY_WINDOW must be >= 1, got %d", c.HistoryWindow)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("FOCUSFLOW", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Int("history_window", cfg.HistoryWindow).
		Int("store_max_attempts", cfg.StoreMaxAttempts).
		Str("model_base_url", cfg.ModelBaseURL).
		Str("model_name", cfg.ModelName).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config with fixed values for tests.
func NewForTesting() *Config {
	return &Config{
		HTTPPort:         11500,
		DBDriver:         "memory",
		StoreMaxAttempts: 3,
		HistoryWindow:    10,
		ModelBaseURL:     "http://localhost:11434",
		ModelName:        "test-model",
		ModelTimeout:     5 * time.Second,
		ModelTemperature: 0.2,
	}
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
