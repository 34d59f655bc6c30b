package queries

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/guard"
)

var ErrGetPendingShipmentsQueryIsNotConstructed = errors.New(
	"GetPendingShipmentsQuery must be created via NewGetPendingShipmentsQuery constructor",
)

// GetPendingShipmentsQuery lists the dispatch board: shipments that are Ready
// and have no dispatch yet.
type GetPendingShipmentsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingShipmentsQuery() GetPendingShipmentsQuery {
	return GetPendingShipmentsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingShipmentsQueryIsNotConstructed)
}

type GetPendingShipmentsQueryResponse struct {
	ID           kernel.UUID
	Number       string
	OrderID      kernel.UUID
	OrderNumber  string
	Priority     shipment.Priority
	PlannedStart time.Time
	PlannedEnd   time.Time
	StopCount    int
	Origin       string
	Destination  string
}
