package queries

import (
	"errors"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	// RecentEventsPerShipment caps the history embedded in each list entry.
	RecentEventsPerShipment = 5
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery pages through all shipments newest first, optionally
// restricted to one status.
type ListShipmentsQuery struct {
	status *shipment.Status
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

// NewListShipmentsQuery treats a zero limit as DefaultListLimit.
func NewListShipmentsQuery(status *shipment.Status, limit, offset int) (ListShipmentsQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var errList []error
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if limit < 1 || limit > MaxListLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return ListShipmentsQuery{}, err
	}

	q := ListShipmentsQuery{limit: limit, offset: offset, guard: guard.NewConstructorGuard()}
	if status != nil {
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListShipmentsQuery) Status() (shipment.Status, bool) {
	if q.status == nil {
		return shipment.Unknown, false
	}
	return *q.status, true
}

func (q ListShipmentsQuery) Limit() int  { return q.limit }
func (q ListShipmentsQuery) Offset() int { return q.offset }

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

type ListShipmentsQueryResponse struct {
	ID           kernel.UUID
	Number       string
	OrderNumber  string
	Priority     shipment.Priority
	Status       shipment.Status
	PlannedStart time.Time
	PlannedEnd   time.Time
	CreatedAt    time.Time
	RecentEvents []EventView
}
