package queries

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingShipmentsQueryHandler returns the shipments waiting for a vehicle
// and driver, most urgent first and then by planned start.
//
// Example:
//
//	handler := NewGetPendingShipmentsQueryHandler(db)
//	pending, err := handler.Handle(ctx, NewGetPendingShipmentsQuery())
type GetPendingShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingShipmentsQueryHandler(db *gorm.DB) GetPendingShipmentsQueryHandler {
	return GetPendingShipmentsQueryHandler{db: db}
}

func (h GetPendingShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingShipmentsQuery,
) ([]GetPendingShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.number,
			s.order_id,
			COALESCE(o.number, ''),
			s.priority,
			s.planned_start,
			s.planned_end,
			(SELECT count(*) FROM shipment_stops st WHERE st.shipment_id = s.id),
			COALESCE((SELECT st.location_name FROM shipment_stops st
				WHERE st.shipment_id = s.id ORDER BY st.sequence LIMIT 1), ''),
			COALESCE((SELECT st.location_name FROM shipment_stops st
				WHERE st.shipment_id = s.id ORDER BY st.sequence DESC LIMIT 1), '')
		FROM shipments s
		LEFT JOIN orders o ON o.id = s.order_id
		WHERE s.status = ?
			AND NOT EXISTS (SELECT 1 FROM dispatches d WHERE d.shipment_id = s.id)
		ORDER BY `+priorityRank("s.priority")+` DESC, s.planned_start, s.number
	`, shipment.Ready.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]GetPendingShipmentsQueryResponse, 0)
	for rows.Next() {
		var (
			resp                     GetPendingShipmentsQueryResponse
			id, orderID              uuid.UUID
			priority                 string
			plannedStart, plannedEnd time.Time
		)
		if err = rows.Scan(
			&id,
			&resp.Number,
			&orderID,
			&resp.OrderNumber,
			&priority,
			&plannedStart,
			&plannedEnd,
			&resp.StopCount,
			&resp.Origin,
			&resp.Destination,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.Priority, err = shipment.ParsePriority(priority); err != nil {
			return nil, err
		}
		resp.PlannedStart = plannedStart.UTC()
		resp.PlannedEnd = plannedEnd.UTC()
		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// priorityRank orders priority names by urgency in SQL.
func priorityRank(column string) string {
	return "CASE " + column +
		" WHEN '" + shipment.Urgent.String() + "' THEN 4" +
		" WHEN '" + shipment.High.String() + "' THEN 3" +
		" WHEN '" + shipment.Normal.String() + "' THEN 2" +
		" WHEN '" + shipment.Low.String() + "' THEN 1" +
		" ELSE 0 END"
}
