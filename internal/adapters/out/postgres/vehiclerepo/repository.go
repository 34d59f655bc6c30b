// Package vehiclerepo persists fleet vehicles.
package vehiclerepo

import (
	"context"
	"errors"

	"freightops/internal/adapters/out/postgres/pgerr"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/vehicle"
	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VehicleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	LicensePlate string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	VehicleType  string    `gorm:"type:varchar(16);not null"`
	Status       string    `gorm:"type:varchar(16);not null;index"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

type GormVehicleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormVehicleRepository(db *gorm.DB, tracker aggregateTracker) *GormVehicleRepository {
	return &GormVehicleRepository{db: db, tracker: tracker}
}

func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "vehicle", aggregate.LicensePlate(), "license plate taken")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	return r.load(r.db.WithContext(ctx), id)
}

func (r *GormVehicleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormVehicleRepository) load(db *gorm.DB, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:           v.ID().Bytes(),
		LicensePlate: v.LicensePlate(),
		VehicleType:  v.Type().String(),
		Status:       v.Status().String(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vehicleType, err := vehicle.ParseType(dto.VehicleType)
	if err != nil {
		return nil, err
	}
	status, err := vehicle.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return vehicle.RestoreVehicle(id, dto.LicensePlate, vehicleType, status)
}
