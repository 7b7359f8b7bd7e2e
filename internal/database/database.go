package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/pkg/logger"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and applies the pool settings.
func Open(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := gormlogger.New(
		slog.NewLogLogger(logger.LoggerWrapper().Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	// every connection to an in-memory sqlite database sees its own empty schema
	if cfg.Driver == internal.DriverSQLite && strings.Contains(cfg.Source, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func dialectorFor(cfg internal.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case internal.DriverPostgres:
		return postgres.Open(cfg.Source), nil
	case internal.DriverSQLite:
		return sqlite.Open(cfg.Source), nil
	case internal.DriverMySQL:
		dsn, err := MySQLDSN(cfg.Source)
		if err != nil {
			return nil, err
		}
		return mysql.New(mysql.Config{DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// MySQLDSN forces parseTime and UTC on a mysql DSN so DATE and DATETIME
// columns scan into time.Time.
func MySQLDSN(source string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(source)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// SQLDriverName is the database/sql driver name behind each configured
// driver, as sqlx and goose expect it.
func SQLDriverName(driver string) string {
	switch driver {
	case internal.DriverPostgres:
		return "pgx"
	case internal.DriverSQLite:
		return "sqlite3"
	default:
		return driver
	}
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
