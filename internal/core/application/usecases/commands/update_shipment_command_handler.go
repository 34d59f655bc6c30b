package commands

import (
	"context"

	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/ports"
)

// UpdateShipmentCommandHandler applies priority, schedule and stop edits to a
// shipment that is neither Completed nor Cancelled. The shipment row stays
// locked for the whole unit of work.
type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	authorizer ports.Authorizer
}

func NewUpdateShipmentCommandHandler(uowFactory ShipmentUoWFactory, authorizer ports.Authorizer) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

func (h UpdateShipmentCommandHandler) Handle(ctx context.Context, command UpdateShipmentCommand) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorizer.Authorize(command.Actor(), "update shipment", shipment.UpdateCapabilities...); err != nil {
		return nil, err
	}

	var updated *shipment.Shipment
	err := retryOnContention("shipment", command.ShipmentID().String(), func() error {
		var err error
		updated, err = h.update(ctx, command)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (h UpdateShipmentCommandHandler) update(ctx context.Context, command UpdateShipmentCommand) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()
	s, err := shipments.GetForUpdate(ctx, command.ShipmentID())
	if err != nil {
		return nil, err
	}

	if p, ok := command.Priority(); ok {
		if err = s.ChangePriority(p); err != nil {
			return nil, err
		}
	}
	if w, ok := command.Planned(); ok {
		if err = s.Reschedule(w); err != nil {
			return nil, err
		}
	}
	if specs, ok := command.Stops(); ok {
		stops, err := shipment.NewStops(specs)
		if err != nil {
			return nil, err
		}
		if err = s.ReplaceStops(stops); err != nil {
			return nil, err
		}
	}

	if err = shipments.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
