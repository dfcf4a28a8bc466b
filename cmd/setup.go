package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Inxkls/xerces/internal/shared"
)

// Setup creates the config file when missing, then initializes the database and runs migrations.
//
// --api-key stores the catalog key in the config file before anything else runs.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
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
	if key := strings.TrimSpace(cmd.String("api-key")); key != "" {
		config.Catalog.APIKey = key
		if err := shared.SaveConfig(configPath, config); err != nil {
			return err
		}
		r.logger.Info("api key saved", "path", configPath)
	}
	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Info("setup complete", "database", config.Database.Path)

	r.writePlain("✓ Database ready at %s\n", config.Database.Path)
	if !config.Catalog.HasAPIKey() {
		r.writePlainln("Next steps:")
		r.writePlain("1. Set catalog.api_key in %s (or %s in .env)\n", configPath, shared.EnvAPIKey)
		r.writePlain("2. Run 'xerces search \"discovery\"' to test the catalog\n")
	}
	return nil
}
