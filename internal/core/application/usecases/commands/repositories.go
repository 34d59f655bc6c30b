// Package commands contains the operations that change shipment state.
// Every handler follows the same shape: validate the command, authorize the
// actor, then run one unit of work that loads with row locks, applies the
// domain change and commits.
package commands

import (
	"context"

	"freightops/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	DispatchRepoFactory interface {
		DispatchRepository() ports.DispatchRepository
	}

	StatusEventRepoFactory interface {
		StatusEventRepository() ports.StatusEventRepository
	}

	// ShipmentUoW is used to create and edit shipments.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		OrderRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// LifecycleUoW is used for status transitions: the shipment and its
	// audit log change together.
	LifecycleUoW interface {
		TxManager
		ShipmentRepoFactory
		StatusEventRepoFactory
	}

	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// StatusEventUoW is used by the outbox relay.
	StatusEventUoW interface {
		TxManager
		StatusEventRepoFactory
	}

	StatusEventUoWFactory interface {
		Create() StatusEventUoW
	}

	// UoW spans every aggregate a dispatch touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
	//   v, err := uow.VehicleRepository().GetForUpdate(ctx, vehicleID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		VehicleRepoFactory
		DriverRepoFactory
		DispatchRepoFactory
		StatusEventRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
