package commands

import (
	"errors"

	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var ErrPublishStatusEventsCommandIsNotConstructed = errors.New(
	"PublishStatusEventsCommand must be created via NewPublishStatusEventsCommand constructor",
)

// PublishStatusEventsCommand triggers one outbox relay pass of at most
// batchSize events.
type PublishStatusEventsCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewPublishStatusEventsCommand(batchSize int) (PublishStatusEventsCommand, error) {
	if batchSize <= 0 {
		return PublishStatusEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return PublishStatusEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PublishStatusEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishStatusEventsCommandIsNotConstructed)
}

func (c PublishStatusEventsCommand) BatchSize() int {
	return c.batchSize
}
