package commands_test

import (
	"errors"
	"testing"
	"time"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEvents(t *testing.T, n int) []*shipment.StatusEvent {
	t.Helper()
	out := make([]*shipment.StatusEvent, 0, n)
	for i := range n {
		e, err := shipment.NewStatusEvent(kernel.NewUUID(), shipment.Ready, "", nil, "ops-1",
			plannedStart.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestNewPublishStatusEventsCommand(t *testing.T) {
	_, err := commands.NewPublishStatusEventsCommand(0)
	require.Error(t, err)

	cmd, err := commands.NewPublishStatusEventsCommand(50)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())
}

func TestPublishStatusEventsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	batch := newEvents(t, 3)
	ids := []kernel.UUID{batch[0].ID(), batch[1].ID(), batch[2].ID()}

	events := new(MockStatusEventRepository)
	publisher := new(MockStatusEventPublisher)
	uow := new(MockUoW)
	uow.On("StatusEventRepository").Return(events)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		events.On("ListUnpublished", ctx, 10).Return(batch, nil).Once(),
		publisher.On("Publish", ctx, batch).Return(nil).Once(),
		events.On("MarkPublished", ctx, ids, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockStatusEventUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewPublishStatusEventsCommand(10)
	n, err := commands.NewPublishStatusEventsCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	uow.AssertExpectations(t)
	events.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPublishStatusEventsCommandHandler_Handle_EmptyBacklog(t *testing.T) {
	ctx := t.Context()
	events := new(MockStatusEventRepository)
	publisher := new(MockStatusEventPublisher)
	uow := new(MockUoW)
	uow.On("StatusEventRepository").Return(events)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	events.On("ListUnpublished", ctx, 10).Return([]*shipment.StatusEvent{}, nil).Once()
	factory := new(MockStatusEventUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewPublishStatusEventsCommand(10)
	n, err := commands.NewPublishStatusEventsCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, n)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestPublishStatusEventsCommandHandler_Handle_PublishFailureKeepsBatch(t *testing.T) {
	ctx := t.Context()
	batch := newEvents(t, 2)

	events := new(MockStatusEventRepository)
	publisher := new(MockStatusEventPublisher)
	uow := new(MockUoW)
	uow.On("StatusEventRepository").Return(events)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	events.On("ListUnpublished", ctx, 5).Return(batch, nil).Once()
	publisher.On("Publish", ctx, batch).Return(errors.New("broker unavailable")).Once()
	factory := new(MockStatusEventUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewPublishStatusEventsCommand(5)
	_, err := commands.NewPublishStatusEventsCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.EqualError(t, err, "broker unavailable")
	events.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertCalled(t, "Rollback", ctx)
	uow.AssertNotCalled(t, "Commit", ctx)
}
