package commands

import (
	"errors"

	"freightops/internal/pkg/errs"
)

// retryOnContention runs attempt and, when the database aborted it because
// of lock contention, runs it once more with fresh reads. A second abort is
// reported as a ConflictError on the given entity.
func retryOnContention(paramName string, id any, attempt func() error) error {
	err := attempt()
	if !errors.Is(err, errs.ErrConcurrentOperation) {
		return err
	}

	err = attempt()
	if errors.Is(err, errs.ErrConcurrentOperation) {
		return errs.NewConflictErrorWithCause(paramName, id, "concurrent update", err)
	}
	return err
}
