package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Classify maps driver errors onto the repository error taxonomy. nil,
// sql.ErrNoRows, context errors and already classified errors pass through.
// The driver error stays reachable with errors.As.
func Classify(err error) error {
	switch {
	case err == nil,
		errors.Is(err, sql.ErrNoRows),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		isClassified(err):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", repository.ErrDuplicateKey, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: referenced row: %w", repository.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
	}
}

func isClassified(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrDuplicateKey) ||
		errors.Is(err, repository.ErrStorageUnavailable) ||
		errors.Is(err, repository.ErrMalformedEncoding) ||
		errors.Is(err, repository.ErrConflict)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
