package ports

import (
	"context"

	"freightops/internal/core/domain/model/dispatch"
	"freightops/internal/core/domain/model/kernel"
)

// DispatchRepository stores dispatch records. There is no update or delete.
type DispatchRepository interface {
	// Add returns errs.ConflictError when the shipment already has a dispatch.
	Add(ctx context.Context, aggregate *dispatch.Dispatch) error

	// GetByShipment returns errs.ObjectNotFoundError when the shipment was never dispatched.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*dispatch.Dispatch, error)

	ExistsForShipment(ctx context.Context, shipmentID kernel.UUID) (bool, error)

	// HasActiveForDriver reports whether the driver is on a dispatch whose
	// shipment is Assigned or InTransit.
	HasActiveForDriver(ctx context.Context, driverID kernel.UUID) (bool, error)
}
