package dispatchrepo_test

import (
	"context"
	"testing"
	"time"

	"freightops/internal/adapters/out/postgres/dispatchrepo"
	"freightops/internal/adapters/out/postgres/postgrestest"
	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/core/domain/model/dispatch"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var assignedAt = time.Date(2025, 6, 2, 5, 30, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type DispatchRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *dispatchrepo.GormDispatchRepository
	shipments  *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *DispatchRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *DispatchRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = dispatchrepo.NewGormDispatchRepository(suite.database.DB, suite.tracker)
	suite.shipments = shipmentrepo.NewGormShipmentRepository(suite.database.DB, suite.tracker)
}

func (suite *DispatchRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestAdd_ThenGetByShipment() {
	ctx := context.Background()
	d := suite.newDispatch(kernel.NewUUID(), kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, d))
	got, err := suite.repository.GetByShipment(ctx, d.ShipmentID())

	suite.Require().NoError(err)
	suite.True(d.ID().IsEqual(got.ID()))
	suite.True(d.VehicleID().IsEqual(got.VehicleID()))
	suite.Equal("dispatcher-1", got.AssignedBy())
	suite.True(assignedAt.Equal(got.AssignedAt()))
	suite.Equal("fragile load", got.Notes())
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestAdd_SecondDispatchForShipment_ReturnsConflict() {
	ctx := context.Background()
	shipmentID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newDispatch(shipmentID, kernel.NewUUID())))

	err := suite.repository.Add(ctx, suite.newDispatch(shipmentID, kernel.NewUUID()))

	var conflict *errs.ConflictError
	suite.Require().ErrorAs(err, &conflict)
	suite.Contains(conflict.Error(), "already dispatched")
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestGetByShipment_NotDispatched_ReturnsNotFound() {
	_, err := suite.repository.GetByShipment(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestExistsForShipment() {
	ctx := context.Background()
	d := suite.newDispatch(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, d))

	exists, err := suite.repository.ExistsForShipment(ctx, d.ShipmentID())
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repository.ExistsForShipment(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestHasActiveForDriver_FollowsShipmentStatus() {
	testCases := []struct {
		status   shipment.Status
		expected bool
	}{
		{shipment.Assigned, true},
		{shipment.InTransit, true},
		{shipment.Completed, false},
		{shipment.Cancelled, false},
	}

	for _, tc := range testCases {
		suite.Run(tc.status.String(), func() {
			ctx := context.Background()
			driverID := kernel.NewUUID()
			s := suite.seedShipment(tc.status)
			suite.Require().NoError(suite.repository.Add(ctx, suite.newDispatch(s.ID(), driverID)))

			active, err := suite.repository.HasActiveForDriver(ctx, driverID)

			suite.Require().NoError(err)
			suite.Equal(tc.expected, active)
		})
	}
}

func (suite *DispatchRepositoryIntegrationTestSuite) TestHasActiveForDriver_NoDispatches() {
	active, err := suite.repository.HasActiveForDriver(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.False(active)
}

func (suite *DispatchRepositoryIntegrationTestSuite) newDispatch(shipmentID, driverID kernel.UUID) *dispatch.Dispatch {
	d, err := dispatch.NewDispatch(shipmentID, kernel.NewUUID(), driverID, "dispatcher-1", assignedAt, "fragile load")
	suite.Require().NoError(err)
	return d
}

func (suite *DispatchRepositoryIntegrationTestSuite) seedShipment(status shipment.Status) *shipment.Shipment {
	ctx := context.Background()
	number, err := suite.shipments.NextNumber(ctx)
	suite.Require().NoError(err)
	stops, err := shipment.NewStops([]shipment.StopSpec{{
		Sequence:         1,
		Type:             shipment.Pickup,
		LocationName:     "Gebze Depot",
		Address:          "OSB 4. Cd.",
		PlannedArrival:   assignedAt.Add(time.Hour),
		PlannedDeparture: assignedAt.Add(2 * time.Hour),
	}})
	suite.Require().NoError(err)
	planned, err := kernel.NewTimeWindow(assignedAt, assignedAt.Add(10*time.Hour))
	suite.Require().NoError(err)

	s, err := shipment.RestoreShipment(kernel.NewUUID(), number, kernel.NewUUID(), shipment.Normal, status,
		planned, nil, nil, assignedAt.Add(-time.Hour), stops)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shipments.Add(ctx, s))
	return s
}

func TestDispatchRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DispatchRepositoryIntegrationTestSuite))
}
