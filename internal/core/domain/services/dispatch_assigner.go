package services

import (
	"fmt"
	"time"

	"freightops/internal/core/domain/model/dispatch"
	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/model/vehicle"
	"freightops/internal/pkg/errs"
)

// Assignment is everything a dispatch produces: the new Dispatch record and
// the audit event of the shipment entering Assigned. The shipment and the
// vehicle passed to Assign are mutated in place.
type Assignment struct {
	Dispatch *dispatch.Dispatch
	Event    *shipment.StatusEvent
}

// AssignmentRequest carries the locked aggregates and the facts the caller
// looked up in the same unit of work.
type AssignmentRequest struct {
	Shipment          *shipment.Shipment
	Vehicle           *vehicle.Vehicle
	Driver            *driver.Driver
	AlreadyDispatched bool
	DriverBusy        bool
	ActorID           string
	Notes             string
	At                time.Time
}

// DispatchAssigner puts one vehicle and one driver on a shipment.
//
// Business rules, checked in this order:
//   - the shipment has no dispatch yet (ConflictError)
//   - the shipment is Ready (PreconditionFailedError)
//   - the vehicle is Available (PreconditionFailedError)
//   - the driver is Active and not on another open dispatch (PreconditionFailedError)
//
// The checks are also exposed one by one so a caller can interleave them
// with the row-locking lookups that produce their inputs.
type DispatchAssigner struct{}

func NewDispatchAssigner() DispatchAssigner {
	return DispatchAssigner{}
}

// CheckShipment validates the shipment side of an assignment.
func (DispatchAssigner) CheckShipment(s *shipment.Shipment, alreadyDispatched bool) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if alreadyDispatched {
		return errs.NewConflictError("shipment", s.ID().String(), "already dispatched")
	}
	if s.Status() != shipment.Ready {
		return errs.NewPreconditionFailedErrorWithCause(
			"shipment", s.ID().String(), "shipment not ready",
			fmt.Errorf("status is %s, expected %s", s.Status(), shipment.Ready),
		)
	}
	return nil
}

// CheckVehicle requires an Available vehicle.
func (DispatchAssigner) CheckVehicle(v *vehicle.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if !v.IsAvailable() {
		return errs.NewPreconditionFailedErrorWithCause(
			"vehicle", v.ID().String(), "vehicle unavailable",
			fmt.Errorf("status is %s, expected %s", v.Status(), vehicle.Available),
		)
	}
	return nil
}

// CheckDriver requires an Active driver who is not already on the road.
func (DispatchAssigner) CheckDriver(d *driver.Driver, busy bool) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !d.IsActive() {
		return errs.NewPreconditionFailedErrorWithCause(
			"driver", d.ID().String(), "driver inactive",
			fmt.Errorf("status is %s, expected %s", d.Status(), driver.Active),
		)
	}
	if busy {
		return errs.NewPreconditionFailedError("driver", d.ID().String(), "driver already dispatched")
	}
	return nil
}

// Assign re-runs every check and then applies the assignment. The Dispatch is
// built before any aggregate is touched, so a rejected request changes nothing.
func (a DispatchAssigner) Assign(req AssignmentRequest) (Assignment, error) {
	if err := a.CheckShipment(req.Shipment, req.AlreadyDispatched); err != nil {
		return Assignment{}, err
	}
	if err := a.CheckVehicle(req.Vehicle); err != nil {
		return Assignment{}, err
	}
	if err := a.CheckDriver(req.Driver, req.DriverBusy); err != nil {
		return Assignment{}, err
	}

	d, err := dispatch.NewDispatch(
		req.Shipment.ID(), req.Vehicle.ID(), req.Driver.ID(),
		req.ActorID, req.At, req.Notes,
	)
	if err != nil {
		return Assignment{}, err
	}

	if err = req.Vehicle.MarkInUse(); err != nil {
		return Assignment{}, err
	}

	event, err := req.Shipment.Assign(req.Vehicle.LicensePlate(), req.Driver.FullName(), req.ActorID, req.At)
	if err != nil {
		return Assignment{}, err
	}

	return Assignment{Dispatch: d, Event: event}, nil
}
