package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes for the constraint classes we care about.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// IsNotFound reports whether err is gorm's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver. The sqlite driver exposes no typed error for this,
// so its message text is matched.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// IsCheckViolation reports whether err is a check-constraint failure from
// either supported driver.
func IsCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCheckViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "check constraint failed") ||
		strings.Contains(msg, "violates check constraint")
}

// IsConstraintViolation reports whether err is any unique or check
// constraint failure.
func IsConstraintViolation(err error) bool {
	return IsUniqueViolation(err) || IsCheckViolation(err)
}
