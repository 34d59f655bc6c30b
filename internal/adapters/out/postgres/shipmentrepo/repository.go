package shipmentrepo

import (
	"context"
	"errors"
	"fmt"

	"freightops/internal/adapters/out/postgres/pgerr"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "shipment", aggregate.Number().String(), "shipment number taken")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the shipment columns, deletes stops that are no longer part
// of the aggregate and upserts the rest.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Omit(clause.Associations, "created_at").
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Stops))
	for _, stop := range dto.Stops {
		keep = append(keep, stop.ID)
	}
	if err := db.Where("shipment_id = ? AND id NOT IN ?", dto.ID, keep).
		Delete(&StopDTO{}).Error; err != nil {
		return pgerr.Translate(err)
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&dto.Stops).Error; err != nil {
		return pgerr.TranslateUnique(err, "shipment", aggregate.ID().String(), "duplicate stop sequence")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate takes a row lock on the shipment. Stops are only changed
// through their shipment, so locking the parent row serializes them too.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, id, true)
}

func (r *GormShipmentRepository) NextNumber(ctx context.Context) (shipment.Number, error) {
	var seq int64
	if err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf("SELECT nextval('%s')", NumberSequence)).
		Scan(&seq).Error; err != nil {
		return "", pgerr.Translate(err)
	}
	return shipment.NewNumber(seq)
}

func (r *GormShipmentRepository) load(ctx context.Context, id kernel.UUID, lock bool) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto ShipmentDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", dto.ID).
		Order("sequence").
		Find(&dto.Stops).Error; err != nil {
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}
