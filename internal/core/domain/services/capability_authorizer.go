package services

import (
	"freightops/internal/core/domain/model/access"
	"freightops/internal/pkg/errs"
)

// CapabilityAuthorizer grants an operation when the actor holds at least one
// of the required capabilities. An empty requirement list denies everything.
type CapabilityAuthorizer struct{}

func NewCapabilityAuthorizer() CapabilityAuthorizer {
	return CapabilityAuthorizer{}
}

func (CapabilityAuthorizer) Authorize(actor access.Actor, operation string, required ...access.Capability) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.HasAny(required...) {
		return errs.NewPermissionDeniedError(actor.ID(), operation, access.CapabilityNames(required)...)
	}
	return nil
}
