package commands

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/dispatch"
	"freightops/internal/core/domain/services"
	"freightops/internal/core/ports"
)

// AssignDispatchCommandHandler creates the dispatch for a shipment.
//
// Rows are locked in a fixed order (shipment, vehicle, driver) so two
// concurrent assignments never deadlock on each other; the loser of a race
// on the same vehicle sees it In Use once the lock is granted. The four
// writes (dispatch, vehicle, shipment, status event) commit together or not
// at all.
//
// Example:
//
//	assignment, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // shipment already dispatched
//	case errors.Is(err, errs.ErrPreconditionFailed):
//	    // shipment not ready, vehicle unavailable, driver inactive or busy
//	case err != nil:
//	    return err
//	}
type AssignDispatchCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	assigner   services.DispatchAssigner
}

func NewAssignDispatchCommandHandler(uowFactory UoWFactory, authorizer ports.Authorizer) AssignDispatchCommandHandler {
	return AssignDispatchCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		assigner:   services.NewDispatchAssigner(),
	}
}

func (h AssignDispatchCommandHandler) Handle(ctx context.Context, command AssignDispatchCommand) (services.Assignment, error) {
	if err := command.Validate(); err != nil {
		return services.Assignment{}, err
	}

	if err := h.authorizer.Authorize(command.Actor(), "assign dispatch", dispatch.AssignCapabilities...); err != nil {
		return services.Assignment{}, err
	}

	var result services.Assignment
	err := retryOnContention("shipment", command.ShipmentID().String(), func() error {
		var err error
		result, err = h.assign(ctx, command)
		return err
	})
	if err != nil {
		return services.Assignment{}, err
	}
	return result, nil
}

func (h AssignDispatchCommandHandler) assign(ctx context.Context, command AssignDispatchCommand) (services.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()
	dispatches := uow.DispatchRepository()
	vehicles := uow.VehicleRepository()
	events := uow.StatusEventRepository()
	registry := services.NewResourceRegistry(vehicles, uow.DriverRepository(), dispatches)

	s, err := shipments.GetForUpdate(ctx, command.ShipmentID())
	if err != nil {
		return services.Assignment{}, err
	}

	dispatched, err := dispatches.ExistsForShipment(ctx, s.ID())
	if err != nil {
		return services.Assignment{}, err
	}
	if err = h.assigner.CheckShipment(s, dispatched); err != nil {
		return services.Assignment{}, err
	}

	v, err := registry.ReserveVehicle(ctx, command.VehicleID())
	if err != nil {
		return services.Assignment{}, err
	}

	d, busy, err := registry.ReserveDriver(ctx, command.DriverID())
	if err != nil {
		return services.Assignment{}, err
	}

	result, err := h.assigner.Assign(services.AssignmentRequest{
		Shipment:          s,
		Vehicle:           v,
		Driver:            d,
		AlreadyDispatched: dispatched,
		DriverBusy:        busy,
		ActorID:           command.Actor().ID(),
		Notes:             command.Notes(),
		At:                time.Now(),
	})
	if err != nil {
		return services.Assignment{}, err
	}

	if err = dispatches.Add(ctx, result.Dispatch); err != nil {
		return services.Assignment{}, err
	}
	if err = vehicles.Update(ctx, v); err != nil {
		return services.Assignment{}, err
	}
	if err = shipments.Update(ctx, s); err != nil {
		return services.Assignment{}, err
	}
	if err = events.Add(ctx, result.Event); err != nil {
		return services.Assignment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Assignment{}, err
	}

	return result, nil
}
