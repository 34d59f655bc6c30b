// Package dispatchrepo persists dispatch records. A unique index on
// shipment_id keeps a shipment from being dispatched twice even when two
// transactions race past the application checks.
package dispatchrepo

import (
	"context"
	"errors"
	"time"

	"freightops/internal/adapters/out/postgres/pgerr"
	"freightops/internal/core/domain/model/dispatch"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DispatchDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	VehicleID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedBy string    `gorm:"type:varchar(255);not null"`
	AssignedAt time.Time `gorm:"type:timestamptz;not null"`
	Notes      string    `gorm:"type:text"`
}

func (DispatchDTO) TableName() string {
	return "dispatches"
}

type GormDispatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDispatchRepository(db *gorm.DB, tracker aggregateTracker) *GormDispatchRepository {
	return &GormDispatchRepository{db: db, tracker: tracker}
}

func (r *GormDispatchRepository) Add(ctx context.Context, aggregate *dispatch.Dispatch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := DispatchDTO{
		ID:         aggregate.ID().Bytes(),
		ShipmentID: aggregate.ShipmentID().Bytes(),
		VehicleID:  aggregate.VehicleID().Bytes(),
		DriverID:   aggregate.DriverID().Bytes(),
		AssignedBy: aggregate.AssignedBy(),
		AssignedAt: aggregate.AssignedAt(),
		Notes:      aggregate.Notes(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "shipment", aggregate.ShipmentID().String(), "already dispatched")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDispatchRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*dispatch.Dispatch, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch", shipmentID.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

func (r *GormDispatchRepository) ExistsForShipment(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM dispatches WHERE shipment_id = ?)`, shipmentID.Bytes()).
		Scan(&exists).Error
	return exists, pgerr.Translate(err)
}

func (r *GormDispatchRepository) HasActiveForDriver(ctx context.Context, driverID kernel.UUID) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM dispatches d
			JOIN shipments s ON s.id = d.shipment_id
			WHERE d.driver_id = ? AND s.status IN ?
		)`,
		driverID.Bytes(),
		[]string{shipment.Assigned.String(), shipment.InTransit.String()},
	).Scan(&exists).Error
	return exists, pgerr.Translate(err)
}

func toDomain(dto DispatchDTO) (*dispatch.Dispatch, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.ShipmentID, dto.VehicleID, dto.DriverID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return dispatch.RestoreDispatch(ids[0], ids[1], ids[2], ids[3], dto.AssignedBy, dto.AssignedAt, dto.Notes)
}
