package database

import (
	"context"
	"fmt"

	"github.com/frahmantamala/employee-management/db"
	"github.com/frahmantamala/employee-management/internal"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

const migrationTable = "schema_migrations"

// Migrate brings the schema up to date. Postgres runs the embedded goose
// migrations; sqlite and mysql use gorm AutoMigrate on the data models.
func Migrate(ctx context.Context, gdb *gorm.DB, driver string) error {
	if driver != internal.DriverPostgres {
		if err := gdb.WithContext(ctx).AutoMigrate(&userDatamodel.User{}, &employeeDatamodel.Employee{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	if err := configureGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Rollback reverts the latest goose migration. Only postgres keeps a
// migration history.
func Rollback(ctx context.Context, gdb *gorm.DB, driver string) error {
	if driver != internal.DriverPostgres {
		return fmt.Errorf("rollback is not supported for %s", driver)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	if err := configureGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

func configureGoose() error {
	goose.SetBaseFS(db.Migrations)
	goose.SetTableName(migrationTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}
