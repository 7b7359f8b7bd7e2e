package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// AdminAccount is the ADMIN user the seeder guarantees.
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

type sampleEmployee struct {
	Name       string
	Position   string
	Department string
	HireDate   string
}

var sampleEmployees = []sampleEmployee{
	{"Ada Lovelace", "Principal Engineer", "ENGINEERING", "2019-04-01"},
	{"Grace Hopper", "Engineering Manager", "ENGINEERING", "2018-09-17"},
	{"Mary Parker", "HR Business Partner", "HR", "2021-02-08"},
	{"Luca Pacioli", "Financial Controller", "FINANCE", "2020-06-15"},
	{"Dana Brooks", "Growth Marketer", "MARKETING", "2022-11-01"},
	{"Sam Ortiz", "Account Executive", "SALES", "2023-03-20"},
	{"Kim Tanaka", "Operations Lead", "OPERATIONS", "2017-01-09"},
}

type SeedResult struct {
	AdminCreated     bool
	EmployeesCreated int
}

// Seeder loads development data with plain SQL through sqlx. Seeding is
// idempotent: the admin is created once and employees only into an empty table.
type Seeder struct {
	db     *sqlx.DB
	hasher PasswordHasher
	logger *slog.Logger
}

func NewSeeder(db *sqlx.DB, hasher PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{db: db, hasher: hasher, logger: logger}
}

// Clear removes every employee and user.
func (s *Seeder) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"employees", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("cleared seeded tables")
	return nil
}

func (s *Seeder) Seed(ctx context.Context, admin AdminAccount) (SeedResult, error) {
	var result SeedResult
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer tx.Rollback() //nolint:errcheck

	adminID, created, err := s.ensureAdmin(ctx, tx, admin)
	if err != nil {
		return result, err
	}
	result.AdminCreated = created

	var count int
	if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM employees"); err != nil {
		return result, fmt.Errorf("count employees: %w", err)
	}
	if count == 0 {
		insert := tx.Rebind(`INSERT INTO employees (name, position, department, hire_date, created_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		now := time.Now().UTC()
		for _, e := range sampleEmployees {
			hireDate, err := time.Parse("2006-01-02", e.HireDate)
			if err != nil {
				return result, err
			}
			if _, err := tx.ExecContext(ctx, insert, e.Name, e.Position, e.Department, hireDate, adminID, now, now); err != nil {
				return result, fmt.Errorf("insert employee %s: %w", e.Name, err)
			}
			result.EmployeesCreated++
		}
	}

	if err := tx.Commit(); err != nil {
		return result, err
	}

	s.logger.Info("seed complete",
		"admin", admin.Username,
		"admin_created", result.AdminCreated,
		"employees_created", result.EmployeesCreated)
	return result, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, tx *sqlx.Tx, admin AdminAccount) (int64, bool, error) {
	var ids []int64
	err := tx.SelectContext(ctx, &ids, tx.Rebind("SELECT id FROM users WHERE username = ? OR email = ?"), admin.Username, admin.Email)
	if err != nil {
		return 0, false, fmt.Errorf("look up admin: %w", err)
	}
	if len(ids) > 0 {
		if _, err := tx.ExecContext(ctx, tx.Rebind("UPDATE users SET role = ? WHERE id = ?"), "ADMIN", ids[0]); err != nil {
			return 0, false, fmt.Errorf("promote admin: %w", err)
		}
		return ids[0], false, nil
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return 0, false, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		tx.Rebind("INSERT INTO users (username, email, password, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"),
		admin.Username, admin.Email, hash, "ADMIN", now, now)
	if err != nil {
		return 0, false, fmt.Errorf("insert admin: %w", err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, tx.Rebind("SELECT id FROM users WHERE username = ?"), admin.Username); err != nil {
		return 0, false, fmt.Errorf("read admin id: %w", err)
	}
	return id, true, nil
}
