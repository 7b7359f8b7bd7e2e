package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded db/migrations (postgres) or auto-migrate the models (sqlite, mysql)",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("migrate: failed to open DB: %v\n", err)
	}
	defer database.Close(db) //nolint:errcheck

	if migrateRollback {
		if err := database.Rollback(ctx, db, cfg.Database.Driver); err != nil {
			log.Fatalf("migrate rollback: %v", err)
		}
		log.Println("rolled back latest migration")
		return nil
	}

	if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
		log.Fatalf("migrate up: %v", err)
	}
	log.Println("database schema is up to date")
	return nil
}
