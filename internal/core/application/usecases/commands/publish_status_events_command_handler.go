package commands

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/ports"
)

// PublishStatusEventsCommandHandler relays committed status events to the
// event stream. Events are locked with SKIP LOCKED so parallel relays split
// the backlog; a publish failure rolls the batch back and it is picked up on
// the next run. Consumers may see an event twice and deduplicate by its ID.
type PublishStatusEventsCommandHandler struct {
	uowFactory StatusEventUoWFactory
	publisher  ports.StatusEventPublisher
}

func NewPublishStatusEventsCommandHandler(
	uowFactory StatusEventUoWFactory,
	publisher ports.StatusEventPublisher,
) PublishStatusEventsCommandHandler {
	return PublishStatusEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the number of events published in this pass.
func (h PublishStatusEventsCommandHandler) Handle(ctx context.Context, command PublishStatusEventsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events := uow.StatusEventRepository()
	batch, err := events.ListUnpublished(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, batch); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(batch))
	for _, e := range batch {
		ids = append(ids, e.ID())
	}
	if err = events.MarkPublished(ctx, ids, time.Now()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(batch), nil
}
