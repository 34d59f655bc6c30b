// Package dispatch models the record of putting one vehicle and one driver on
// one shipment. A dispatch is written once and never changed afterwards.
package dispatch

import (
	"errors"
	"strings"
	"time"

	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var ErrDispatchIsNotConstructed = errors.New("Dispatch must be created via NewDispatch constructor")

// AssignCapabilities are the capabilities allowed to create a dispatch.
var AssignCapabilities = []access.Capability{access.Dispatcher, access.Admin}

type Dispatch struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	vehicleID  kernel.UUID
	driverID   kernel.UUID
	assignedBy string
	assignedAt time.Time
	notes      string
	guard      guard.ConstructorGuard
}

func NewDispatch(shipmentID, vehicleID, driverID kernel.UUID, assignedBy string, assignedAt time.Time, notes string) (*Dispatch, error) {
	return RestoreDispatch(kernel.NewUUID(), shipmentID, vehicleID, driverID, assignedBy, assignedAt, notes)
}

func RestoreDispatch(
	id, shipmentID, vehicleID, driverID kernel.UUID,
	assignedBy string,
	assignedAt time.Time,
	notes string,
) (*Dispatch, error) {
	var errList []error
	errList = append(errList, id.Validate(), shipmentID.Validate(), vehicleID.Validate(), driverID.Validate())
	if strings.TrimSpace(assignedBy) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("assignedBy"))
	}
	if assignedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("assignedAt"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Dispatch{
		id:         id,
		shipmentID: shipmentID,
		vehicleID:  vehicleID,
		driverID:   driverID,
		assignedBy: assignedBy,
		assignedAt: assignedAt.UTC(),
		notes:      strings.TrimSpace(notes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (d *Dispatch) Validate() error {
	if d == nil {
		return ErrDispatchIsNotConstructed
	}
	return d.guard.Validate(ErrDispatchIsNotConstructed)
}

func (d *Dispatch) ID() kernel.UUID {
	return d.id
}

func (d *Dispatch) ShipmentID() kernel.UUID {
	return d.shipmentID
}

func (d *Dispatch) VehicleID() kernel.UUID {
	return d.vehicleID
}

func (d *Dispatch) DriverID() kernel.UUID {
	return d.driverID
}

func (d *Dispatch) AssignedBy() string {
	return d.assignedBy
}

func (d *Dispatch) AssignedAt() time.Time {
	return d.assignedAt
}

func (d *Dispatch) Notes() string {
	return d.notes
}
