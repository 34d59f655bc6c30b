package commands_test

import (
	"context"
	"testing"
	"time"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/dispatch"
	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/order"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/model/vehicle"
	"freightops/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) NextNumber(ctx context.Context) (shipment.Number, error) {
	args := m.Called(ctx)
	return args.Get(0).(shipment.Number), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockDispatchRepository struct{ mock.Mock }

func (m *MockDispatchRepository) Add(ctx context.Context, d *dispatch.Dispatch) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDispatchRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*dispatch.Dispatch, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Dispatch), args.Error(1)
}

func (m *MockDispatchRepository) ExistsForShipment(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	args := m.Called(ctx, shipmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDispatchRepository) HasActiveForDriver(ctx context.Context, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, driverID)
	return args.Bool(0), args.Error(1)
}

type MockStatusEventRepository struct{ mock.Mock }

func (m *MockStatusEventRepository) Add(ctx context.Context, e *shipment.StatusEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockStatusEventRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusEvent, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.StatusEvent), args.Error(1)
}

func (m *MockStatusEventRepository) ListUnpublished(ctx context.Context, limit int) ([]*shipment.StatusEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.StatusEvent), args.Error(1)
}

func (m *MockStatusEventRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) DispatchRepository() ports.DispatchRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchRepository)
}

func (m *MockUoW) StatusEventRepository() ports.StatusEventRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusEventRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockStatusEventUoWFactory struct{ mock.Mock }

func (m *MockStatusEventUoWFactory) Create() commands.StatusEventUoW {
	args := m.Called()
	return args.Get(0).(commands.StatusEventUoW)
}

type MockStatusEventPublisher struct{ mock.Mock }

func (m *MockStatusEventPublisher) Publish(ctx context.Context, events []*shipment.StatusEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var plannedStart = time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)

func newActor(t *testing.T, id string, caps ...access.Capability) access.Actor {
	t.Helper()
	actor, err := access.NewActor(id, caps...)
	require.NoError(t, err)
	return actor
}

func stopSpecs() []shipment.StopSpec {
	return []shipment.StopSpec{
		{
			Sequence:         2,
			Type:             shipment.Dropoff,
			LocationName:     "Ankara Hub",
			Address:          "Sincan OSB 4",
			PlannedArrival:   plannedStart.Add(6 * time.Hour),
			PlannedDeparture: plannedStart.Add(7 * time.Hour),
		},
		{
			Sequence:         1,
			Type:             shipment.Pickup,
			LocationName:     "Gebze Depot",
			Address:          "Organize Sanayi 12",
			PlannedArrival:   plannedStart.Add(time.Hour),
			PlannedDeparture: plannedStart.Add(2 * time.Hour),
		},
	}
}

func plannedWindow(t *testing.T) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(plannedStart, plannedStart.Add(10*time.Hour))
	require.NoError(t, err)
	return w
}

func restoreShipment(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()
	stops, err := shipment.NewStops(stopSpecs())
	require.NoError(t, err)
	s, err := shipment.RestoreShipment(kernel.NewUUID(), "SHP000042", kernel.NewUUID(), shipment.Normal,
		status, plannedWindow(t), nil, nil, plannedStart.Add(-24*time.Hour), stops)
	require.NoError(t, err)
	return s
}
