// Package errs provides standardized error types for the freight operations service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the application handlers and the adapters.
//
// The package includes error types for each failure kind the service reports:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: a referenced entity does not exist
//   - PermissionDeniedError: the actor lacks the capability for an operation
//   - PreconditionFailedError: an entity exists but is in the wrong state
//   - ConflictError: a uniqueness rule or a concurrent writer blocked the operation
//   - InvalidTransitionError: a status change outside the lifecycle table
//   - ConcurrentOperationError: the database aborted the transaction under contention
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on wrapped values
//
// The HTTP adapter maps sentinels to status codes; nothing else inspects messages.
package errs
