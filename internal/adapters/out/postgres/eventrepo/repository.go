// Package eventrepo stores the shipment status audit log and serves it as
// the outbox for the event relay.
package eventrepo

import (
	"context"
	"time"

	"freightops/internal/adapters/out/postgres/pgerr"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatusEventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_status_events_shipment_created,priority:1"`
	Status      string     `gorm:"type:varchar(16);not null"`
	EventType   string     `gorm:"type:varchar(32);not null"`
	Description string     `gorm:"type:text;not null"`
	Location    *string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;index:idx_status_events_shipment_created,priority:2"`
	CreatedBy   string     `gorm:"type:varchar(255);not null"`
	PublishedAt *time.Time `gorm:"type:timestamptz;index"`
}

func (StatusEventDTO) TableName() string {
	return "shipment_status_events"
}

type GormStatusEventRepository struct {
	db *gorm.DB
}

func NewGormStatusEventRepository(db *gorm.DB) *GormStatusEventRepository {
	return &GormStatusEventRepository{db: db}
}

func (r *GormStatusEventRepository) Add(ctx context.Context, event *shipment.StatusEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormStatusEventRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusEvent, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusEventDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate(err)
	}
	return toDomainList(dtos)
}

func (r *GormStatusEventRepository) ListUnpublished(ctx context.Context, limit int) ([]*shipment.StatusEvent, error) {
	var dtos []StatusEventDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate(err)
	}
	return toDomainList(dtos)
}

func (r *GormStatusEventRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return pgerr.Translate(r.db.WithContext(ctx).
		Model(&StatusEventDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", at.UTC()).Error)
}

func fromDomain(e *shipment.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:          e.ID().Bytes(),
		ShipmentID:  e.ShipmentID().Bytes(),
		Status:      e.Status().String(),
		EventType:   e.EventType().String(),
		Description: e.Description(),
		Location:    e.Location(),
		CreatedAt:   e.CreatedAt(),
		CreatedBy:   e.CreatedBy(),
		PublishedAt: e.PublishedAt(),
	}
}

func toDomainList(dtos []StatusEventDTO) ([]*shipment.StatusEvent, error) {
	events := make([]*shipment.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func toDomain(dto StatusEventDTO) (*shipment.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	eventType, err := shipment.ParseEventType(dto.EventType)
	if err != nil {
		return nil, err
	}
	return shipment.RestoreStatusEvent(id, shipmentID, status, eventType, dto.Description, dto.Location,
		dto.CreatedAt, dto.CreatedBy, dto.PublishedAt)
}
