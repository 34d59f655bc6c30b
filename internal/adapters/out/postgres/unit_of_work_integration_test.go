package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freightops/internal/adapters/out/postgres"
	"freightops/internal/adapters/out/postgres/postgrestest"
	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/order"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/model/vehicle"
	"freightops/internal/core/domain/services"
	"freightops/internal/core/ports"
	"freightops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

// UnitOfWorkIntegrationTestSuite runs the unit of work and the dispatch
// handler against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *postgrestest.Database
	factory  *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB, zap.NewNop(), 2*time.Second)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ShipmentRepository())
	suite.NotNil(uow1.DispatchRepository())
	suite.NotNil(uow2.StatusEventRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	v, _ := vehicle.NewVehicle(kernel.NewUUID(), "35 RB 001", vehicle.Trailer)
	d, _ := driver.NewDriver(kernel.NewUUID(), "Mert Kaya", "")
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, v))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, d))

	tracked := uow.(*postgres_adapter.GormUnitOfWork).TrackedAggregates()
	suite.Len(tracked, 2)

	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().VehicleRepository().Get(ctx, v.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.factory.Create().DriverRepository().Get(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_LockTimeoutIsConcurrentOperation() {
	ctx := context.Background()
	v := suite.seedVehicle("06 LT 100")

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.VehicleRepository().GetForUpdate(ctx, v.ID())
	suite.Require().NoError(err)

	waiter := suite.factory.Create()
	suite.Require().NoError(waiter.Begin(ctx))
	defer func() { _ = waiter.Rollback(ctx) }()
	_, err = waiter.VehicleRepository().GetForUpdate(ctx, v.ID())

	suite.Require().ErrorIs(err, errs.ErrConcurrentOperation)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignDispatch_ConcurrentAssignmentsOfOneVehicle() {
	ctx := context.Background()
	v := suite.seedVehicle("34 CC 777")
	first := suite.seedReadyShipment()
	second := suite.seedReadyShipment()
	d1 := suite.seedDriver("Zeynep Arslan")
	d2 := suite.seedDriver("Can Öztürk")

	handler := suite.assignHandler()
	actor, _ := access.NewActor("dispatcher-1", access.Dispatcher)

	results := make([]error, 2)
	var g errgroup.Group
	for i, pair := range []struct {
		shipment *shipment.Shipment
		driver   *driver.Driver
	}{{first, d1}, {second, d2}} {
		g.Go(func() error {
			cmd, err := commands.NewAssignDispatchCommand(actor, pair.shipment.ID(), v.ID(), pair.driver.ID(), "")
			if err != nil {
				return err
			}
			_, results[i] = handler.Handle(ctx, cmd)
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.False(errs.IsValidation(err))
		suite.ErrorIs(err, errs.ErrPreconditionFailed)
	}
	suite.Equal(1, succeeded, "exactly one assignment must win the vehicle")
	suite.assertCount("dispatches", 1)

	got, err := suite.factory.Create().VehicleRepository().Get(ctx, v.ID())
	suite.Require().NoError(err)
	suite.Equal(vehicle.InUse, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignDispatch_ConcurrentAssignmentsOfOneShipment() {
	ctx := context.Background()
	s := suite.seedReadyShipment()
	vehicles := []*vehicle.Vehicle{suite.seedVehicle("34 AA 001"), suite.seedVehicle("34 AA 002")}
	drivers := []*driver.Driver{suite.seedDriver("Ali Vural"), suite.seedDriver("Eda Kılıç")}

	handler := suite.assignHandler()
	actor, _ := access.NewActor("admin-1", access.Admin)

	results := make([]error, 2)
	var g errgroup.Group
	for i := range 2 {
		g.Go(func() error {
			cmd, err := commands.NewAssignDispatchCommand(actor, s.ID(), vehicles[i].ID(), drivers[i].ID(), "")
			if err != nil {
				return err
			}
			_, results[i] = handler.Handle(ctx, cmd)
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, errs.ErrConflict)
	}
	suite.Equal(1, succeeded)
	suite.assertCount("dispatches", 1)
	suite.assertCount("shipment_status_events", 1)

	available := 0
	for _, v := range vehicles {
		got, err := suite.factory.Create().VehicleRepository().Get(ctx, v.ID())
		suite.Require().NoError(err)
		if got.IsAvailable() {
			available++
		}
	}
	suite.Equal(1, available, "the losing vehicle must stay available")
}

func (suite *UnitOfWorkIntegrationTestSuite) assignHandler() commands.AssignDispatchCommandHandler {
	f := uowFactory(func() commands.UoW { return suite.factory.Create() })
	return commands.NewAssignDispatchCommandHandler(f, services.NewCapabilityAuthorizer())
}

func (suite *UnitOfWorkIntegrationTestSuite) seed(fn func(uow ports.UnitOfWork) error) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(fn(uow))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedVehicle(plate string) *vehicle.Vehicle {
	v, err := vehicle.NewVehicle(kernel.NewUUID(), plate, vehicle.Tractor)
	suite.Require().NoError(err)
	suite.seed(func(uow ports.UnitOfWork) error { return uow.VehicleRepository().Add(context.Background(), v) })
	return v
}

func (suite *UnitOfWorkIntegrationTestSuite) seedDriver(name string) *driver.Driver {
	d, err := driver.NewDriver(kernel.NewUUID(), name, "")
	suite.Require().NoError(err)
	suite.seed(func(uow ports.UnitOfWork) error { return uow.DriverRepository().Add(context.Background(), d) })
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) seedReadyShipment() *shipment.Shipment {
	ctx := context.Background()
	start := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)

	o, err := order.RestoreOrder(kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8], order.Confirmed)
	suite.Require().NoError(err)
	stops, err := shipment.NewStops([]shipment.StopSpec{{
		Sequence:         1,
		Type:             shipment.Pickup,
		LocationName:     "Mersin Port",
		Address:          "Liman Cd. 1",
		PlannedArrival:   start.Add(time.Hour),
		PlannedDeparture: start.Add(2 * time.Hour),
	}})
	suite.Require().NoError(err)
	planned, err := kernel.NewTimeWindow(start, start.Add(8*time.Hour))
	suite.Require().NoError(err)

	var s *shipment.Shipment
	suite.seed(func(uow ports.UnitOfWork) error {
		if err := uow.OrderRepository().Add(ctx, o); err != nil {
			return err
		}
		number, err := uow.ShipmentRepository().NextNumber(ctx)
		if err != nil {
			return err
		}
		s, err = shipment.RestoreShipment(kernel.NewUUID(), number, o.ID(), shipment.Normal, shipment.Ready,
			planned, nil, nil, start.Add(-time.Hour), stops)
		if err != nil {
			return err
		}
		return uow.ShipmentRepository().Add(ctx, s)
	})
	return s
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Table(table).Count(&count).Error)
	suite.Equal(expected, count, table)
}

func TestUnitOfWorkIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
