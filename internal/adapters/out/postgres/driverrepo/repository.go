// Package driverrepo persists drivers.
package driverrepo

import (
	"context"
	"errors"

	"freightops/internal/adapters/out/postgres/pgerr"
	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DriverDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"type:varchar(255);not null;index"`
	Phone    string    `gorm:"type:varchar(64)"`
	Status   string    `gorm:"type:varchar(16);not null;index"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{db: db, tracker: tracker}
}

func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := DriverDTO{
		ID:       aggregate.ID().Bytes(),
		FullName: aggregate.FullName(),
		Phone:    aggregate.Phone(),
		Status:   aggregate.Status().String(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the driver row. Two dispatches naming the same driver
// queue here, so the second one sees the first one's dispatch.
func (r *GormDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDriverRepository) load(db *gorm.DB, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	driverID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := driver.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(driverID, dto.FullName, dto.Phone, status)
}
