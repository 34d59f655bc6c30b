package commands

import (
	"errors"
	"strings"

	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var ErrTransitionStatusCommandIsNotConstructed = errors.New(
	"TransitionStatusCommand must be created via NewTransitionStatusCommand constructor",
)

// TransitionStatusCommand moves a shipment to a new status, optionally
// recording actual arrival and departure times on its stops in the same step.
type TransitionStatusCommand struct { //nolint:recvcheck //using for validation
	actor       access.Actor
	shipmentID  kernel.UUID
	target      shipment.Status
	description string
	location    *string
	stopUpdates []shipment.StopUpdate

	guard guard.ConstructorGuard
}

func NewTransitionStatusCommand(
	actor access.Actor,
	shipmentID kernel.UUID,
	target shipment.Status,
	description string,
	location *string,
	stopUpdates []shipment.StopUpdate,
) (TransitionStatusCommand, error) {
	errList := []error{actor.Validate(), shipmentID.Validate(), target.Validate()}
	for _, u := range stopUpdates {
		if err := u.StopID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("stopId", err))
		}
		if u.ActualArrival == nil && u.ActualDeparture == nil {
			errList = append(errList, errs.NewValueIsRequiredError("actualArrival or actualDeparture"))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return TransitionStatusCommand{}, err
	}

	if location != nil {
		loc := strings.TrimSpace(*location)
		location = &loc
	}

	updates := make([]shipment.StopUpdate, len(stopUpdates))
	copy(updates, stopUpdates)

	return TransitionStatusCommand{
		actor:       actor,
		shipmentID:  shipmentID,
		target:      target,
		description: strings.TrimSpace(description),
		location:    location,
		stopUpdates: updates,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStatusCommandIsNotConstructed)
}

func (c TransitionStatusCommand) Actor() access.Actor {
	return c.actor
}

func (c TransitionStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c TransitionStatusCommand) Target() shipment.Status {
	return c.target
}

// Description may be empty; the event then gets a generated one.
func (c TransitionStatusCommand) Description() string {
	return c.description
}

func (c TransitionStatusCommand) Location() *string {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

func (c TransitionStatusCommand) StopUpdates() []shipment.StopUpdate {
	out := make([]shipment.StopUpdate, len(c.stopUpdates))
	copy(out, c.stopUpdates)
	return out
}
