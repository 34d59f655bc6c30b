package ports

import (
	"context"

	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/vehicle"
)

// VehicleRepository persists fleet vehicles.
type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetForUpdate locks the vehicle row for the rest of the unit of work, so
	// two assignments racing for the same vehicle are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
}

// DriverRepository persists drivers.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForUpdate locks the driver row for the rest of the unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}
