package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// UniqueViolation reports whether err is a unique-index violation from any of
// the supported drivers, and returns the offending constraint or message so
// callers can tell which column collided.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return pgErr.ConstraintName + " " + pgErr.Detail, true
		}
		return "", false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return err.Error(), true
	}

	msg := err.Error()
	// sqlite: "UNIQUE constraint failed: users.email"; mysql: "Error 1062 ... Duplicate entry"
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry") {
		return msg, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
