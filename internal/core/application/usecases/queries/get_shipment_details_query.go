package queries

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrGetShipmentDetailsQueryIsNotConstructed = errors.New(
	"GetShipmentDetailsQuery must be created via NewGetShipmentDetailsQuery constructor",
)

type GetShipmentDetailsQuery struct {
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetShipmentDetailsQuery(shipmentID kernel.UUID) (GetShipmentDetailsQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentDetailsQuery{}, err
	}
	return GetShipmentDetailsQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentDetailsQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

func (q GetShipmentDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentDetailsQueryIsNotConstructed)
}

// DispatchView names the vehicle and driver put on a shipment.
type DispatchView struct {
	ID           kernel.UUID
	VehicleID    kernel.UUID
	LicensePlate string
	DriverID     kernel.UUID
	DriverName   string
	AssignedBy   string
	AssignedAt   time.Time
	Notes        string
}

// GetShipmentDetailsQueryResponse is one shipment with its stops in sequence
// order, its dispatch if any and its full history newest first.
type GetShipmentDetailsQueryResponse struct {
	ID           kernel.UUID
	Number       string
	OrderID      kernel.UUID
	OrderNumber  string
	Priority     shipment.Priority
	Status       shipment.Status
	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
	CreatedAt    time.Time
	Stops        []StopView
	Dispatch     *DispatchView
	Events       []EventView
}
