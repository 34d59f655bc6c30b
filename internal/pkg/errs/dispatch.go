package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrConflict            = errors.New("conflict")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrConcurrentOperation = errors.New("concurrent operation aborted")
)

// PermissionDeniedError is returned when the actor holds none of the
// capabilities required by an operation.
type PermissionDeniedError struct {
	ActorID   string
	Operation string
	Required  []string
}

func NewPermissionDeniedError(actorID, operation string, required ...string) *PermissionDeniedError {
	return &PermissionDeniedError{ActorID: actorID, Operation: operation, Required: required}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: actor %s cannot %s (requires one of: %s)",
		ErrPermissionDenied, e.ActorID, e.Operation, strings.Join(e.Required, ", "))
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// PreconditionFailedError is returned when an entity exists but is not in
// the state an operation requires (vehicle unavailable, shipment not ready...).
type PreconditionFailedError struct {
	ParamName string
	ID        any
	Reason    string
	Cause     error
}

func NewPreconditionFailedError(paramName string, id any, reason string) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName, ID: id, Reason: reason}
}

func NewPreconditionFailedErrorWithCause(paramName string, id any, reason string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName, ID: id, Reason: reason, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s %s) (cause: %v)", ErrPreconditionFailed, e.Reason, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s %s)", ErrPreconditionFailed, e.Reason, e.ParamName, e.ID)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ConflictError is returned when a uniqueness rule would be broken or a
// concurrent writer won the race for the same rows.
type ConflictError struct {
	ParamName string
	ID        any
	Reason    string
	Cause     error
}

func NewConflictError(paramName string, id any, reason string) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Reason: reason}
}

func NewConflictErrorWithCause(paramName string, id any, reason string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s %s) (cause: %v)", ErrConflict, e.Reason, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s %s)", ErrConflict, e.Reason, e.ParamName, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvalidTransitionError is returned when a status change is not listed in
// the lifecycle transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConcurrentOperationError wraps a database abort caused by lock contention
// (serialization failure, deadlock, lock timeout). Callers may retry the
// whole unit of work.
type ConcurrentOperationError struct {
	Code  string
	Cause error
}

func NewConcurrentOperationError(code string, cause error) *ConcurrentOperationError {
	return &ConcurrentOperationError{Code: code, Cause: cause}
}

func (e *ConcurrentOperationError) Error() string {
	return fmt.Sprintf("%s: sqlstate %s (cause: %v)", ErrConcurrentOperation, e.Code, e.Cause)
}

func (e *ConcurrentOperationError) Unwrap() error {
	return ErrConcurrentOperation
}
