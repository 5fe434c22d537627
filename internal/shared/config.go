package shared

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Storage backends accepted in [StorageConfig.Backend].
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Lookup  LookupConfig  `toml:"lookup"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// LookupConfig contains settings for the postal code lookup service.
type LookupConfig struct {
	BaseURL   string  `toml:"base_url"`
	UserAgent string  `toml:"user_agent"`
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables
}

// StorageConfig selects the slot backend and where the address book lives.
type StorageConfig struct {
	Backend      string `toml:"backend"`
	Path         string `toml:"path"`
	Slot         string `toml:"slot"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate reports configuration values the application cannot run with.
func (c *Config) Validate() error {
	if c.Lookup.BaseURL == "" {
		return fmt.Errorf("%w: lookup.base_url is empty", ErrInvalidConfig)
	}
	if c.Lookup.RateLimit < 0 {
		return fmt.Errorf("%w: lookup.rate_limit must not be negative", ErrInvalidConfig)
	}
	if !slices.Contains([]string{BackendSQLite, BackendBolt, BackendMemory}, c.Storage.Backend) {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}
	if c.Storage.Slot == "" {
		return fmt.Errorf("%w: storage.slot is empty", ErrInvalidConfig)
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is required for the %s backend", ErrInvalidConfig, c.Storage.Backend)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
