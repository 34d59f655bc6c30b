// Package pgerr translates PostgreSQL failures into the service's error kinds.
package pgerr

import (
	"errors"

	"freightops/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories react to.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
)

// Code returns the SQLSTATE of err, or "" when err did not come from the server.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Translate maps contention aborts to errs.ConcurrentOperationError and leaves
// everything else untouched.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	switch code := Code(err); code {
	case SerializationFailure, DeadlockDetected, LockNotAvailable:
		return errs.NewConcurrentOperationError(code, err)
	default:
		return err
	}
}

// TranslateUnique is Translate that also turns a unique violation into a
// ConflictError with the given reason.
func TranslateUnique(err error, paramName string, id any, reason string) error {
	if Code(err) == UniqueViolation {
		return errs.NewConflictErrorWithCause(paramName, id, reason, err)
	}
	return Translate(err)
}
