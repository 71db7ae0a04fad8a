// Package config provides configuration loading and validation for the
// match engine CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the engine configuration, loadable from a JSON file. All
// fields are optional; missing values fall back to environment
// variables or built-in defaults.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Redis connection URL for the demand-profile cache
	AMQPURL     string `json:"amqp_url,omitempty"`     // Broker URL for notification dispatch
	NotifyQueue string `json:"notify_queue,omitempty"` // Broker queue name for notifications

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address, host:port

	// Matching
	MinScore     int    `json:"min_score,omitempty"`     // Score floor for ranked results
	MaxResults   int    `json:"max_results,omitempty"`   // Cap on ranked result size
	ModelVersion string `json:"model_version,omitempty"` // Version stamped on persisted recommendations

	// Behavior
	Verbose bool `json:"verbose,omitempty"`  // Print formatted result boxes
	LogJSON bool `json:"log_json,omitempty"` // Emit JSON logs instead of console output
	Debug   bool `json:"debug,omitempty"`    // Lower the log level to debug
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills empty connection fields from the conventional
// environment variables. Values already set in the config win.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.RedisURL == "" {
		c.RedisURL = os.Getenv("REDIS_URL")
	}
	if c.AMQPURL == "" {
		c.AMQPURL = os.Getenv("AMQP_URL")
	}
	if c.ListenAddr == "" {
		c.ListenAddr = os.Getenv("LISTEN_ADDR")
	}
}

// Validate checks that the configuration has valid values.
// Required fields are enforced per command after merging, not here.
func (c *Config) Validate() error {
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("config error: 'min_score' must be between 0 and 100")
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("config error: 'max_results' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.AMQPURL == "" {
		result.AMQPURL = defaults.AMQPURL
	}
	if result.NotifyQueue == "" {
		result.NotifyQueue = defaults.NotifyQueue
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.ModelVersion == "" {
		result.ModelVersion = defaults.ModelVersion
	}

	// Int fields: use default if zero
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}
	if result.MaxResults == 0 {
		result.MaxResults = defaults.MaxResults
	}

	// Bool fields: cannot distinguish unset from false, so we don't
	// merge (CLI flags should always win for bools)

	return result
}
