package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle returns one page of shipments newest first, each with its
// RecentEventsPerShipment latest events.
func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) ([]ListShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	page := db.Table("shipments AS s").
		Select(`s.id, s.number, s.order_id, COALESCE(o.number, '') AS order_number,
			s.priority, s.status, s.planned_start, s.planned_end,
			s.actual_start, s.actual_end, s.created_at`).
		Joins("LEFT JOIN orders o ON o.id = s.order_id")
	if status, ok := query.Status(); ok {
		page = page.Where("s.status = ?", status.String())
	}

	var rows []shipmentRow
	if err := page.
		Order("s.created_at DESC, s.number DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]ListShipmentsQueryResponse, 0, len(rows))
	if len(rows) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	recent, err := h.recentEvents(db, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		d, err := row.details()
		if err != nil {
			return nil, err
		}
		events := recent[row.ID]
		if events == nil {
			events = []EventView{}
		}
		result = append(result, ListShipmentsQueryResponse{
			ID:           d.ID,
			Number:       d.Number,
			OrderNumber:  d.OrderNumber,
			Priority:     d.Priority,
			Status:       d.Status,
			PlannedStart: d.PlannedStart,
			PlannedEnd:   d.PlannedEnd,
			CreatedAt:    d.CreatedAt,
			RecentEvents: events,
		})
	}
	return result, nil
}

func (h ListShipmentsQueryHandler) recentEvents(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID][]EventView, error) {
	var rows []eventRow
	if err := db.Raw(`
		SELECT id, shipment_id, status, description, location, created_at, created_by
		FROM (
			SELECT e.*, row_number() OVER (
				PARTITION BY e.shipment_id ORDER BY e.created_at DESC, e.id DESC
			) AS rn
			FROM shipment_status_events e
			WHERE e.shipment_id IN ?
		) ranked
		WHERE rn <= ?
		ORDER BY shipment_id, created_at DESC, id DESC
	`, ids, RecentEventsPerShipment).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byShipment := make(map[uuid.UUID][]EventView, len(ids))
	for _, row := range rows {
		v, err := row.view()
		if err != nil {
			return nil, err
		}
		byShipment[row.ShipmentID] = append(byShipment[row.ShipmentID], v)
	}
	return byShipment, nil
}

