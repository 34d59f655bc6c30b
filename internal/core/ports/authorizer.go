package ports

import "freightops/internal/core/domain/model/access"

// Authorizer decides whether an actor may perform an operation. Every
// state-changing handler consults it before touching storage.
type Authorizer interface {
	// Authorize returns errs.PermissionDeniedError when the actor holds none
	// of the required capabilities.
	Authorize(actor access.Actor, operation string, required ...access.Capability) error
}
