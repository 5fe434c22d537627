package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/agenda/internal/repositories"
	"github.com/desertthunder/agenda/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to --config.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	return r.writePlain("✓ Wrote %s\n", configPath)
}

// SetupDatabase initializes the configured storage backend, creating the config file first if it is missing.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing storage", "backend", config.Storage.Backend, "path", config.Storage.Path)

	slot, err := repositories.OpenSlot(config.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer slot.Close()

	addresses, err := repositories.NewAddressRepository(slot, r.logger).List()
	if err != nil {
		return fmt.Errorf("failed to read address book: %w", err)
	}

	r.logger.Infof("setup complete for %s storage: %v", config.Storage.Backend, config.Storage.Path)
	return r.writePlain("✓ %s storage ready at %s (%d addresses in %s)\n",
		config.Storage.Backend, config.Storage.Path, len(addresses), config.Storage.Slot)
}
