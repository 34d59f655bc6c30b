package ports

import (
	"context"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/order"
)

// OrderRepository reads the customer orders shipments are created for.
// Orders are written by the sales side; Add exists for imports and tests.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
