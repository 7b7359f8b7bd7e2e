package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	clearData     bool
	adminUsername string
	adminEmail    string
	adminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an ADMIN account and sample employees for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer database.Close(db) //nolint:errcheck

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("failed to access db: %v", err)
		}

		seeder := database.NewSeeder(
			sqlx.NewDb(sqlDB, database.SQLDriverName(cfg.Database.Driver)),
			auth.NewBcryptHasher(cfg.Security.BCryptCost),
			logger.LoggerWrapper(),
		)

		if clearData {
			if err := seeder.Clear(ctx); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing users and employees")
		}

		result, err := seeder.Seed(ctx, database.AdminAccount{
			Username: adminUsername,
			Email:    adminEmail,
			Password: adminPassword,
		})
		if err != nil {
			log.Fatalf("failed to seed: %v", err)
		}

		if result.AdminCreated {
			fmt.Println("Seeded admin user:", adminUsername)
		} else {
			fmt.Println("admin user already exists; ensured ADMIN role:", adminUsername)
		}
		fmt.Printf("Seeded %d employees\n", result.EmployeesCreated)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().StringVar(&adminUsername, "admin-username", "admin", "username of the seeded ADMIN account")
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@example.com", "email of the seeded ADMIN account")
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "admin12345", "password of the seeded ADMIN account")
}
