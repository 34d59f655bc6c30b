package commands

import (
	"context"
	"fmt"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/ports"
	"freightops/internal/pkg/errs"
)

// CreateShipmentCommandHandler persists a new Draft shipment with its stops.
//
// Checks, in order: actor holds OPS or ADMIN, the order exists, the order is
// CONFIRMED. The shipment number is drawn from the database sequence inside
// the same unit of work.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	authorizer ports.Authorizer
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory, authorizer ports.Authorizer) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, command CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorizer.Authorize(command.Actor(), "create shipment", shipment.CreateCapabilities...); err != nil {
		return nil, err
	}

	var created *shipment.Shipment
	err := retryOnContention("order", command.OrderID().String(), func() error {
		var err error
		created, err = h.create(ctx, command)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (h CreateShipmentCommandHandler) create(ctx context.Context, command CreateShipmentCommand) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.IsConfirmed() {
		return nil, errs.NewPreconditionFailedErrorWithCause(
			"order", o.ID().String(), "order not confirmed",
			fmt.Errorf("status is %s", o.Status()),
		)
	}

	stops, err := shipment.NewStops(command.Stops())
	if err != nil {
		return nil, err
	}

	shipments := uow.ShipmentRepository()
	number, err := shipments.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		number,
		o.ID(),
		command.Priority(),
		command.Planned(),
		stops,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = shipments.Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
