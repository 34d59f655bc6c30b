package services

import (
	"context"

	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/vehicle"
)

type (
	vehicleReader interface {
		Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
		GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
	}

	driverReader interface {
		Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
		GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
	}

	activeDispatchChecker interface {
		HasActiveForDriver(ctx context.Context, driverID kernel.UUID) (bool, error)
	}
)

// ResourceRegistry answers availability questions about vehicles and drivers.
// The Reserve methods lock the rows they read and must run inside a started
// unit of work; they are meant for the dispatch flow only.
type ResourceRegistry struct {
	vehicles   vehicleReader
	drivers    driverReader
	dispatches activeDispatchChecker
	assigner   DispatchAssigner
}

func NewResourceRegistry(vehicles vehicleReader, drivers driverReader, dispatches activeDispatchChecker) ResourceRegistry {
	return ResourceRegistry{
		vehicles:   vehicles,
		drivers:    drivers,
		dispatches: dispatches,
		assigner:   NewDispatchAssigner(),
	}
}

// IsVehicleAvailable fails with errs.ObjectNotFoundError for an unknown vehicle.
func (r ResourceRegistry) IsVehicleAvailable(ctx context.Context, id kernel.UUID) (bool, error) {
	v, err := r.vehicles.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return v.IsAvailable(), nil
}

// IsDriverActive fails with errs.ObjectNotFoundError for an unknown driver.
func (r ResourceRegistry) IsDriverActive(ctx context.Context, id kernel.UUID) (bool, error) {
	d, err := r.drivers.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return d.IsActive(), nil
}

// ReserveVehicle locks the vehicle and requires it to be Available.
func (r ResourceRegistry) ReserveVehicle(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	v, err := r.vehicles.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = r.assigner.CheckVehicle(v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReserveDriver locks the driver, requires it to be Active and reports
// whether it is already on an open dispatch.
func (r ResourceRegistry) ReserveDriver(ctx context.Context, id kernel.UUID) (*driver.Driver, bool, error) {
	d, err := r.drivers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, false, err
	}
	busy, err := r.dispatches.HasActiveForDriver(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if err = r.assigner.CheckDriver(d, busy); err != nil {
		return nil, false, err
	}
	return d, busy, nil
}
