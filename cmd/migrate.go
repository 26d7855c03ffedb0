package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtroode/studyprofile-server/database"
	"github.com/dtroode/studyprofile-server/internal/config"
	"github.com/dtroode/studyprofile-server/internal/logger"
	"github.com/dtroode/studyprofile-server/internal/repository/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig(envFile)
			if err != nil {
				return fmt.Errorf("failed to parse config: %w", err)
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate requires the %s driver, got %s", config.DriverPostgres, cfg.Database.Driver)
			}
			log := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

			db, err := postgres.NewConnection(cmd.Context(), cfg.Database.DSN, true)
			if err != nil {
				return err
			}
			defer db.Close()

			version, err := database.Version(db.DB)
			if err != nil {
				return err
			}
			log.Info("database migrated", "version", version)
			return nil
		},
	}
}
