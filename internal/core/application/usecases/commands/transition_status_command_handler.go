package commands

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/ports"
)

// TransitionResult is what a successful status change produced.
type TransitionResult struct {
	Shipment     *shipment.Shipment
	Event        *shipment.StatusEvent
	UpdatedStops []*shipment.Stop
}

// TransitionStatusCommandHandler drives the shipment lifecycle.
//
// The capability check depends only on the target status and runs before the
// shipment is loaded. Assigned is never accepted as a target here; only a
// dispatch moves a shipment there.
type TransitionStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
	authorizer ports.Authorizer
}

func NewTransitionStatusCommandHandler(uowFactory LifecycleUoWFactory, authorizer ports.Authorizer) TransitionStatusCommandHandler {
	return TransitionStatusCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

func (h TransitionStatusCommandHandler) Handle(ctx context.Context, command TransitionStatusCommand) (TransitionResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionResult{}, err
	}

	target := command.Target()
	if err := h.authorizer.Authorize(
		command.Actor(), "transition shipment to "+target.String(), shipment.RequiredCapabilities(target)...,
	); err != nil {
		return TransitionResult{}, err
	}

	var result TransitionResult
	err := retryOnContention("shipment", command.ShipmentID().String(), func() error {
		var err error
		result, err = h.transition(ctx, command)
		return err
	})
	if err != nil {
		return TransitionResult{}, err
	}
	return result, nil
}

func (h TransitionStatusCommandHandler) transition(ctx context.Context, command TransitionStatusCommand) (TransitionResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()
	s, err := shipments.GetForUpdate(ctx, command.ShipmentID())
	if err != nil {
		return TransitionResult{}, err
	}

	tr, err := s.TransitionTo(
		command.Target(),
		command.Description(),
		command.Location(),
		command.StopUpdates(),
		command.Actor().ID(),
		time.Now(),
	)
	if err != nil {
		return TransitionResult{}, err
	}

	if err = shipments.Update(ctx, s); err != nil {
		return TransitionResult{}, err
	}
	if err = uow.StatusEventRepository().Add(ctx, tr.Event); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{Shipment: s, Event: tr.Event, UpdatedStops: tr.UpdatedStops}, nil
}
