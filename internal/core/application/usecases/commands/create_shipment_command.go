package commands

import (
	"errors"

	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand asks for a new Draft shipment for a confirmed order.
//
// Example:
//
//	planned, _ := kernel.NewTimeWindow(start, end)
//	cmd, err := NewCreateShipmentCommand(actor, orderID, shipment.High, planned, stops)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	actor    access.Actor
	orderID  kernel.UUID
	priority shipment.Priority
	planned  kernel.TimeWindow
	stops    []shipment.StopSpec

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates the payload, including the stop list,
// so that a malformed request never reaches the database.
func NewCreateShipmentCommand(
	actor access.Actor,
	orderID kernel.UUID,
	priority shipment.Priority,
	planned kernel.TimeWindow,
	stops []shipment.StopSpec,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		actor:    actor,
		orderID:  orderID,
		priority: priority,
		planned:  planned,
		guard:    guard.NewConstructorGuard(),
	}

	sorted, stopsErr := shipment.ValidateStops(stops)
	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		priority.Validate(),
		planned.Validate(),
		stopsErr,
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	cmd.stops = sorted
	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Actor() access.Actor {
	return c.actor
}

func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateShipmentCommand) Priority() shipment.Priority {
	return c.priority
}

func (c CreateShipmentCommand) Planned() kernel.TimeWindow {
	return c.planned
}

// Stops returns the validated stop specs in ascending sequence order.
func (c CreateShipmentCommand) Stops() []shipment.StopSpec {
	out := make([]shipment.StopSpec, len(c.stops))
	copy(out, c.stops)
	return out
}
