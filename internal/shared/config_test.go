package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Lookup.BaseURL != "https://viacep.com.br/ws" {
			t.Errorf("expected ViaCEP base URL, got %s", config.Lookup.BaseURL)
		}

		if config.Storage.Backend != BackendSQLite {
			t.Errorf("expected sqlite backend, got %s", config.Storage.Backend)
		}

		if config.Storage.Path != "./agenda.db" {
			t.Errorf("expected storage path ./agenda.db, got %s", config.Storage.Path)
		}

		if config.Storage.Slot != "@address-book" {
			t.Errorf("expected slot @address-book, got %s", config.Storage.Slot)
		}

		if config.Lookup.RateLimit != 0 {
			t.Errorf("expected rate limit disabled by default, got %v", config.Lookup.RateLimit)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Storage.Path != defaultConfig.Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[lookup]
base_url = "http://localhost:9090/ws"
rate_limit = 2.5

[storage]
backend = "bolt"
path = "/custom/agenda.bolt"
slot = "contacts"

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Lookup.BaseURL != "http://localhost:9090/ws" {
			t.Errorf("expected custom base URL, got %s", config.Lookup.BaseURL)
		}

		if config.Lookup.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Lookup.RateLimit)
		}

		if config.Storage.Backend != BackendBolt {
			t.Errorf("expected bolt backend, got %s", config.Storage.Backend)
		}

		if config.Storage.Slot != "contacts" {
			t.Errorf("expected slot contacts, got %s", config.Storage.Slot)
		}

		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}

		if config.Lookup.UserAgent != "agenda/0.1" {
			t.Errorf("expected unset keys to keep defaults, got user agent %q", config.Lookup.UserAgent)
		}
	})

	t.Run("LoadConfig rejects unknown backend", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[storage]\nbackend = \"redis\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrUnknownBackend) {
			t.Errorf("expected ErrUnknownBackend, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{"empty base url", func(c *Config) { c.Lookup.BaseURL = "" }},
			{"negative rate limit", func(c *Config) { c.Lookup.RateLimit = -1 }},
			{"empty slot", func(c *Config) { c.Storage.Slot = "" }},
			{"sqlite without path", func(c *Config) { c.Storage.Path = "" }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}

		t.Run("memory backend needs no path", func(t *testing.T) {
			config := DefaultConfig()
			config.Storage.Backend = BackendMemory
			config.Storage.Path = ""
			if err := config.Validate(); err != nil {
				t.Errorf("expected memory backend without path to be valid, got %v", err)
			}
		})
	})
}
