package ports

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
)

// StatusEventRepository is the append-only audit log of shipment status
// changes. Events are never updated except for the outbox publication mark.
type StatusEventRepository interface {
	Add(ctx context.Context, event *shipment.StatusEvent) error

	// ListByShipment returns events newest first.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.StatusEvent, error)

	// ListUnpublished locks and returns up to limit unpublished events, oldest
	// first. Rows locked by another relay are skipped.
	ListUnpublished(ctx context.Context, limit int) ([]*shipment.StatusEvent, error)

	// MarkPublished stamps published_at on the given events.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
