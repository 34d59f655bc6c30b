package http_test

import (
	"context"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
)

type MockCreateShipmentHandler struct{ mock.Mock }

func (m *MockCreateShipmentHandler) Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (*shipment.Shipment, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockUpdateShipmentHandler struct{ mock.Mock }

func (m *MockUpdateShipmentHandler) Handle(ctx context.Context, cmd commands.UpdateShipmentCommand) (*shipment.Shipment, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockAssignDispatchHandler struct{ mock.Mock }

func (m *MockAssignDispatchHandler) Handle(ctx context.Context, cmd commands.AssignDispatchCommand) (services.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(services.Assignment), args.Error(1)
}

type MockTransitionStatusHandler struct{ mock.Mock }

func (m *MockTransitionStatusHandler) Handle(ctx context.Context, cmd commands.TransitionStatusCommand) (commands.TransitionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransitionResult), args.Error(1)
}

type MockPendingShipmentsHandler struct{ mock.Mock }

func (m *MockPendingShipmentsHandler) Handle(ctx context.Context, q queries.GetPendingShipmentsQuery) ([]queries.GetPendingShipmentsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetPendingShipmentsQueryResponse), args.Error(1)
}

type MockShipmentDetailsHandler struct{ mock.Mock }

func (m *MockShipmentDetailsHandler) Handle(ctx context.Context, q queries.GetShipmentDetailsQuery) (queries.GetShipmentDetailsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetShipmentDetailsQueryResponse), args.Error(1)
}

type MockListShipmentsHandler struct{ mock.Mock }

func (m *MockListShipmentsHandler) Handle(ctx context.Context, q queries.ListShipmentsQuery) ([]queries.ListShipmentsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.ListShipmentsQueryResponse), args.Error(1)
}

type MockAvailableVehiclesHandler struct{ mock.Mock }

func (m *MockAvailableVehiclesHandler) Handle(ctx context.Context, q queries.GetAvailableVehiclesQuery) ([]queries.GetAvailableVehiclesQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetAvailableVehiclesQueryResponse), args.Error(1)
}

type MockAvailableDriversHandler struct{ mock.Mock }

func (m *MockAvailableDriversHandler) Handle(ctx context.Context, q queries.GetAvailableDriversQuery) ([]queries.GetAvailableDriversQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.GetAvailableDriversQueryResponse), args.Error(1)
}
