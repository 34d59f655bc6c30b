package commands

import (
	"errors"

	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/guard"
)

var ErrAssignDispatchCommandIsNotConstructed = errors.New(
	"AssignDispatchCommand must be created via NewAssignDispatchCommand constructor",
)

// AssignDispatchCommand puts a vehicle and a driver on a Ready shipment.
//
// Example:
//
//	cmd, err := NewAssignDispatchCommand(actor, shipmentID, vehicleID, driverID, "call before pickup")
//	if err != nil {
//	    return err
//	}
//	assignment, err := handler.Handle(ctx, cmd)
type AssignDispatchCommand struct { //nolint:recvcheck //using for validation
	actor      access.Actor
	shipmentID kernel.UUID
	vehicleID  kernel.UUID
	driverID   kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

func NewAssignDispatchCommand(
	actor access.Actor,
	shipmentID, vehicleID, driverID kernel.UUID,
	notes string,
) (AssignDispatchCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		vehicleID.Validate(),
		driverID.Validate(),
	); err != nil {
		return AssignDispatchCommand{}, err
	}

	return AssignDispatchCommand{
		actor:      actor,
		shipmentID: shipmentID,
		vehicleID:  vehicleID,
		driverID:   driverID,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDispatchCommand) Validate() error {
	return c.guard.Validate(ErrAssignDispatchCommandIsNotConstructed)
}

func (c AssignDispatchCommand) Actor() access.Actor { return c.actor }
func (c AssignDispatchCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c AssignDispatchCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c AssignDispatchCommand) DriverID() kernel.UUID { return c.driverID }
func (c AssignDispatchCommand) Notes() string { return c.notes }
