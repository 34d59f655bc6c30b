// Package postgres implements the unit of work over GORM and PostgreSQL.
//
// A unit of work owns at most one transaction. Repositories handed out after
// Begin run inside it; before Begin they use the plain connection, which is
// what read-only callers want.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
//	// ...
//	return uow.Commit(ctx)
//
// Transactions run at READ COMMITTED with a local lock timeout. Row locks
// taken by GetForUpdate serialize competing writers; contention aborts
// surface as errs.ConcurrentOperationError so handlers can retry.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"freightops/internal/adapters/out/postgres/dispatchrepo"
	"freightops/internal/adapters/out/postgres/driverrepo"
	"freightops/internal/adapters/out/postgres/eventrepo"
	"freightops/internal/adapters/out/postgres/orderrepo"
	"freightops/internal/adapters/out/postgres/pgerr"
	"freightops/internal/adapters/out/postgres/shipmentrepo"
	"freightops/internal/adapters/out/postgres/vehiclerepo"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultLockTimeout = 5 * time.Second

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	logger      *zap.Logger
	lockTimeout time.Duration
}

func NewGormUnitOfWorkFactory(db *gorm.DB, logger *zap.Logger, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &GormUnitOfWorkFactory{
		db:          db,
		logger:      logger.Named("uow"),
		lockTimeout: lockTimeout,
	}
}

// Create returns a fresh unit of work. Instances are not safe for concurrent use.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		lockTimeout:       f.lockTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *zap.Logger
	lockTimeout       time.Duration
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return pgerr.Translate(tx.Error)
	}

	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
	if err := tx.Exec(timeout).Error; err != nil {
		_ = tx.Rollback()
		return pgerr.Translate(err)
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes the transaction. A serialization failure reported at
// commit time is translated like any other contention abort.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return pgerr.Translate(err)
	}

	if ce := uow.logger.Check(zap.DebugLevel, "unit of work committed"); ce != nil {
		ids := make([]string, 0, len(uow.trackedAggregates))
		for _, t := range uow.trackedAggregates {
			ids = append(ids, t.ID.String())
		}
		ce.Write(zap.Strings("aggregates", ids))
	}
	return nil
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when
// there is none, which handlers ignore in their deferred cleanup.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return vehiclerepo.NewGormVehicleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DispatchRepository() ports.DispatchRepository {
	return dispatchrepo.NewGormDispatchRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StatusEventRepository() ports.StatusEventRepository {
	return eventrepo.NewGormStatusEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates lists the IDs written since Begin.
func (uow *GormUnitOfWork) TrackedAggregates() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}
