package queries

import (
	"context"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetShipmentDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentDetailsQueryHandler(db *gorm.DB) GetShipmentDetailsQueryHandler {
	return GetShipmentDetailsQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown shipment. The four
// reads are not in one transaction; a concurrent transition may show up in
// the events but not yet in the status.
func (h GetShipmentDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentDetailsQuery,
) (GetShipmentDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.ShipmentID()

	var head []shipmentRow
	if err := db.Raw(`
		SELECT s.id, s.number, s.order_id, COALESCE(o.number, '') AS order_number,
			s.priority, s.status, s.planned_start, s.planned_end,
			s.actual_start, s.actual_end, s.created_at
		FROM shipments s
		LEFT JOIN orders o ON o.id = s.order_id
		WHERE s.id = ?
	`, id.Bytes()).Scan(&head).Error; err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	if len(head) == 0 {
		return GetShipmentDetailsQueryResponse{}, errs.NewObjectNotFoundError("shipment", id.String())
	}

	resp, err := head[0].details()
	if err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}

	if resp.Stops, err = h.stops(db, id); err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	if resp.Dispatch, err = h.dispatch(db, id); err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	if resp.Events, err = h.events(db, id); err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	return resp, nil
}

func (h GetShipmentDetailsQueryHandler) stops(db *gorm.DB, id kernel.UUID) ([]StopView, error) {
	var rows []stopRow
	if err := db.Raw(`
		SELECT id, shipment_id, sequence, stop_type, location_name, address,
			COALESCE(contact_person, '') AS contact_person,
			COALESCE(contact_phone, '') AS contact_phone,
			COALESCE(special_instructions, '') AS special_instructions,
			planned_arrival, planned_departure, actual_arrival, actual_departure
		FROM shipment_stops
		WHERE shipment_id = ?
		ORDER BY sequence
	`, id.Bytes()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	stops := make([]StopView, 0, len(rows))
	for _, row := range rows {
		v, err := row.view()
		if err != nil {
			return nil, err
		}
		stops = append(stops, v)
	}
	return stops, nil
}

func (h GetShipmentDetailsQueryHandler) dispatch(db *gorm.DB, id kernel.UUID) (*DispatchView, error) {
	var rows []struct {
		ID           uuid.UUID
		VehicleID    uuid.UUID
		LicensePlate string
		DriverID     uuid.UUID
		DriverName   string
		AssignedBy   string
		AssignedAt   time.Time
		Notes        string
	}
	if err := db.Raw(`
		SELECT d.id, d.vehicle_id, COALESCE(v.license_plate, '') AS license_plate,
			d.driver_id, COALESCE(dr.full_name, '') AS driver_name,
			d.assigned_by, d.assigned_at, COALESCE(d.notes, '') AS notes
		FROM dispatches d
		LEFT JOIN vehicles v ON v.id = d.vehicle_id
		LEFT JOIN drivers dr ON dr.id = d.driver_id
		WHERE d.shipment_id = ?
	`, id.Bytes()).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	dispatchID, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(row.VehicleID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(row.DriverID[:])
	if err != nil {
		return nil, err
	}
	return &DispatchView{
		ID:           dispatchID,
		VehicleID:    vehicleID,
		LicensePlate: row.LicensePlate,
		DriverID:     driverID,
		DriverName:   row.DriverName,
		AssignedBy:   row.AssignedBy,
		AssignedAt:   row.AssignedAt.UTC(),
		Notes:        row.Notes,
	}, nil
}

func (h GetShipmentDetailsQueryHandler) events(db *gorm.DB, id kernel.UUID) ([]EventView, error) {
	var rows []eventRow
	if err := db.Raw(`
		SELECT id, shipment_id, status, description, location, created_at, created_by
		FROM shipment_status_events
		WHERE shipment_id = ?
		ORDER BY created_at DESC, id DESC
	`, id.Bytes()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]EventView, 0, len(rows))
	for _, row := range rows {
		v, err := row.view()
		if err != nil {
			return nil, err
		}
		events = append(events, v)
	}
	return events, nil
}

type shipmentRow struct {
	ID           uuid.UUID
	Number       string
	OrderID      uuid.UUID
	OrderNumber  string
	Priority     string
	Status       string
	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
	CreatedAt    time.Time
}

func (r shipmentRow) details() (GetShipmentDetailsQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
	if err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	priority, err := shipment.ParsePriority(r.Priority)
	if err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	status, err := shipment.ParseStatus(r.Status)
	if err != nil {
		return GetShipmentDetailsQueryResponse{}, err
	}
	return GetShipmentDetailsQueryResponse{
		ID:           id,
		Number:       r.Number,
		OrderID:      orderID,
		OrderNumber:  r.OrderNumber,
		Priority:     priority,
		Status:       status,
		PlannedStart: r.PlannedStart.UTC(),
		PlannedEnd:   r.PlannedEnd.UTC(),
		ActualStart:  utc(r.ActualStart),
		ActualEnd:    utc(r.ActualEnd),
		CreatedAt:    r.CreatedAt.UTC(),
		Stops:        []StopView{},
		Events:       []EventView{},
	}, nil
}
