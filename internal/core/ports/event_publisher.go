package ports

import (
	"context"

	"freightops/internal/core/domain/model/shipment"
)

// StatusEventPublisher delivers committed status events to downstream
// consumers. Delivery is at least once; consumers deduplicate by event ID.
type StatusEventPublisher interface {
	Publish(ctx context.Context, events []*shipment.StatusEvent) error
}
