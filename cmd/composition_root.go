package cmd

import (
	httpin "freightops/internal/adapters/in/http"
	"freightops/internal/adapters/out/kafka"
	"freightops/internal/adapters/out/postgres"
	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/services"
	"freightops/internal/jobs"
	"freightops/internal/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	authorizer services.CapabilityAuthorizer
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger, m *metrics.Metrics) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger, config.DBLockTimeout),
		authorizer: services.NewCapabilityAuthorizer(),
		logger:     logger,
		metrics:    m,
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.authorizer)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentCommandHandler(f, c.authorizer)
}

func (c *CompositionRoot) CreateAssignDispatchCommandHandler() commands.AssignDispatchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDispatchCommandHandler(f, c.authorizer)
}

func (c *CompositionRoot) CreateTransitionStatusCommandHandler() commands.TransitionStatusCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionStatusCommandHandler(f, c.authorizer)
}

func (c *CompositionRoot) CreatePublishStatusEventsCommandHandler(
	publisher *kafka.StatusEventPublisher,
) commands.PublishStatusEventsCommandHandler {
	var f commands.StatusEventUoWFactory = FuncStatusEventUoWFactory(func() commands.StatusEventUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishStatusEventsCommandHandler(f, publisher)
}

func (c *CompositionRoot) CreateGetPendingShipmentsQueryHandler() queries.GetPendingShipmentsQueryHandler {
	return queries.NewGetPendingShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentDetailsQueryHandler() queries.GetShipmentDetailsQueryHandler {
	return queries.NewGetShipmentDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableVehiclesQueryHandler() queries.GetAvailableVehiclesQueryHandler {
	return queries.NewGetAvailableVehiclesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDriversQueryHandler() queries.GetAvailableDriversQueryHandler {
	return queries.NewGetAvailableDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateShipment:    c.CreateCreateShipmentCommandHandler(),
		UpdateShipment:    c.CreateUpdateShipmentCommandHandler(),
		AssignDispatch:    c.CreateAssignDispatchCommandHandler(),
		TransitionStatus:  c.CreateTransitionStatusCommandHandler(),
		PendingShipments:  c.CreateGetPendingShipmentsQueryHandler(),
		ShipmentDetails:   c.CreateGetShipmentDetailsQueryHandler(),
		ListShipments:     c.CreateListShipmentsQueryHandler(),
		AvailableVehicles: c.CreateGetAvailableVehiclesQueryHandler(),
		AvailableDrivers:  c.CreateGetAvailableDriversQueryHandler(),
	})
}

func (c *CompositionRoot) CreateStatusEventPublisher() *kafka.StatusEventPublisher {
	return kafka.NewStatusEventPublisher(c.config.KafkaBrokers, c.config.KafkaStatusEventsTopic, c.logger)
}

// CreateJobManager returns an empty manager when no brokers are configured.
func (c *CompositionRoot) CreateJobManager(publisher *kafka.StatusEventPublisher) *jobs.JobManager {
	if publisher == nil {
		return jobs.NewJobManager()
	}
	relay := jobs.NewStatusEventRelayJob(
		c.CreatePublishStatusEventsCommandHandler(publisher),
		c.config.RelaySchedule,
		c.config.RelayBatchSize,
		c.metrics,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncStatusEventUoWFactory func() commands.StatusEventUoW

func (f FuncStatusEventUoWFactory) Create() commands.StatusEventUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
