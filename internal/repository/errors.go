package repository

import (
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrUserConflict is the structured error for username/email uniqueness
// violations surfaced by the storage engine.
var ErrUserConflict = goerrors.New("email or username already exists", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("USER_CONFLICT")

// isUniqueViolation matches the unique-constraint errors raised by the sqlite
// drivers and by postgres, the two engines the DSN can point at.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed") && strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func translateInsertErr(err error) error {
	if isUniqueViolation(err) {
		return ErrUserConflict
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create record")
}

func notFound(err error, msg string) error {
	if goerrors.Is(err, sql.ErrNoRows) {
		return goerrors.New(msg, goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "query failed")
}
