package cmd

import (
	"fmt"

	"inventory/internal/config"
	"inventory/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands (postgres)",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrations("up")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback the last migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrations("down")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func runMigrations(direction string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if cfg.DatabaseDriver != config.DriverPostgres {
		return fmt.Errorf("migrate requires DATABASE_DRIVER=postgres, got %q", cfg.DatabaseDriver)
	}

	switch direction {
	case "up":
		if err := database.MigrateUp(cfg.DatabaseDSN); err != nil {
			return err
		}
		fmt.Println("Migrations completed successfully")
	case "down":
		if err := database.MigrateDown(cfg.DatabaseDSN); err != nil {
			return err
		}
		fmt.Println("Migration rolled back successfully")
	}
	return nil
}
