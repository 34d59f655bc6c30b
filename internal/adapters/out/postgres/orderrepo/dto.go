// Package orderrepo persists the customer orders shipments are created for.
package orderrepo

import (
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the local copy of an order, kept in sync by the sales side.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status string    `gorm:"type:varchar(16);not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:     o.ID().Bytes(),
		Number: o.Number(),
		Status: o.Status().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.Number, status)
}
