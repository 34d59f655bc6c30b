// Package ports defines the contracts between the freight domain and the
// infrastructure: repositories bound to a unit of work, the authorization
// collaborator and the status event publisher.
package ports

import (
	"context"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
)

// ShipmentRepository persists Shipment aggregates together with their stops.
type ShipmentRepository interface {
	// Add persists a new shipment and all of its stops.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update writes the shipment row and reconciles its stops: stops no longer
	// present are removed, the others are inserted or updated.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get loads a shipment with its stops ordered by sequence.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate is Get holding a row lock on the shipment until the unit
	// of work ends. It must be called inside a started unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// NextNumber draws the next value of the shipment number sequence.
	// Values are unique across concurrent callers and never reused.
	NextNumber(ctx context.Context) (shipment.Number, error)
}
