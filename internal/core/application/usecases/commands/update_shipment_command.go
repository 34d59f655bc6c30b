package commands

import (
	"errors"

	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	ErrUpdateShipmentCommandIsNotConstructed = errors.New(
		"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
	)
	ErrNothingToUpdate = errs.NewValueIsRequiredError("priority, planned window or stops")
)

// UpdateShipmentCommand edits an open shipment. Nil fields are left as they
// are; a non-nil stop list replaces every stop.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      access.Actor
	shipmentID kernel.UUID
	priority   *shipment.Priority
	planned    *kernel.TimeWindow
	stops      []shipment.StopSpec

	guard guard.ConstructorGuard
}

func NewUpdateShipmentCommand(
	actor access.Actor,
	shipmentID kernel.UUID,
	priority *shipment.Priority,
	planned *kernel.TimeWindow,
	stops []shipment.StopSpec,
) (UpdateShipmentCommand, error) {
	if priority == nil && planned == nil && stops == nil {
		return UpdateShipmentCommand{}, ErrNothingToUpdate
	}

	cmd := UpdateShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}

	errList := []error{actor.Validate(), shipmentID.Validate()}
	if priority != nil {
		p := *priority
		errList = append(errList, p.Validate())
		cmd.priority = &p
	}
	if planned != nil {
		w := *planned
		errList = append(errList, w.Validate())
		cmd.planned = &w
	}
	if stops != nil {
		sorted, err := shipment.ValidateStops(stops)
		errList = append(errList, err)
		cmd.stops = sorted
	}

	if err := errors.Join(errList...); err != nil {
		return UpdateShipmentCommand{}, err
	}
	return cmd, nil
}

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) Actor() access.Actor {
	return c.actor
}

func (c UpdateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Priority returns the new priority and whether one was requested.
func (c UpdateShipmentCommand) Priority() (shipment.Priority, bool) {
	if c.priority == nil {
		return shipment.UnknownPriority, false
	}
	return *c.priority, true
}

func (c UpdateShipmentCommand) Planned() (kernel.TimeWindow, bool) {
	if c.planned == nil {
		return kernel.TimeWindow{}, false
	}
	return *c.planned, true
}

func (c UpdateShipmentCommand) Stops() ([]shipment.StopSpec, bool) {
	if c.stops == nil {
		return nil, false
	}
	out := make([]shipment.StopSpec, len(c.stops))
	copy(out, c.stops)
	return out, true
}
