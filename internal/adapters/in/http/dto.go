package http

import (
	"time"

	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type StopRequest struct {
	Sequence            int       `json:"sequence" validate:"required,min=1"`
	Type                string    `json:"type" validate:"required,stop_type"`
	LocationName        string    `json:"locationName" validate:"required,max=255"`
	Address             string    `json:"address" validate:"required"`
	ContactPerson       string    `json:"contactPerson" validate:"max=255"`
	ContactPhone        string    `json:"contactPhone" validate:"max=50"`
	SpecialInstructions string    `json:"specialInstructions"`
	PlannedArrival      time.Time `json:"plannedArrival" validate:"required"`
	PlannedDeparture    time.Time `json:"plannedDeparture" validate:"required"`
}

type CreateShipmentRequest struct {
	OrderID      openapi_types.UUID `json:"orderId" validate:"required"`
	Priority     string             `json:"priority" validate:"omitempty,priority"`
	PlannedStart time.Time          `json:"plannedStart" validate:"required"`
	PlannedEnd   time.Time          `json:"plannedEnd" validate:"required"`
	Stops        []StopRequest      `json:"stops" validate:"required,min=1,dive"`
}

// UpdateShipmentRequest changes only the fields present. The planned window
// is replaced as a whole, so its bounds come together.
type UpdateShipmentRequest struct {
	Priority     *string       `json:"priority" validate:"omitempty,priority"`
	PlannedStart *time.Time    `json:"plannedStart" validate:"required_with=PlannedEnd"`
	PlannedEnd   *time.Time    `json:"plannedEnd" validate:"required_with=PlannedStart"`
	Stops        []StopRequest `json:"stops" validate:"omitempty,min=1,dive"`
}

type AssignDispatchRequest struct {
	VehicleID openapi_types.UUID `json:"vehicleId" validate:"required"`
	DriverID  openapi_types.UUID `json:"driverId" validate:"required"`
	Notes     string             `json:"notes" validate:"max=1000"`
}

type StopUpdateRequest struct {
	StopID          openapi_types.UUID `json:"stopId" validate:"required"`
	ActualArrival   *time.Time         `json:"actualArrival" validate:"required_without=ActualDeparture"`
	ActualDeparture *time.Time         `json:"actualDeparture"`
}

type TransitionStatusRequest struct {
	Status      string              `json:"status" validate:"required,shipment_status"`
	Description string              `json:"description" validate:"max=1000"`
	Location    *string             `json:"location" validate:"omitempty,max=255"`
	StopUpdates []StopUpdateRequest `json:"stopUpdates" validate:"dive"`
}

type StopResponse struct {
	ID                  openapi_types.UUID `json:"id"`
	Sequence            int                `json:"sequence"`
	Type                string             `json:"type"`
	LocationName        string             `json:"locationName"`
	Address             string             `json:"address"`
	ContactPerson       string             `json:"contactPerson,omitempty"`
	ContactPhone        string             `json:"contactPhone,omitempty"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
	PlannedArrival      time.Time          `json:"plannedArrival"`
	PlannedDeparture    time.Time          `json:"plannedDeparture"`
	ActualArrival       *time.Time         `json:"actualArrival,omitempty"`
	ActualDeparture     *time.Time         `json:"actualDeparture,omitempty"`
}

type ShipmentResponse struct {
	ID           openapi_types.UUID `json:"id"`
	Number       string             `json:"number"`
	OrderID      openapi_types.UUID `json:"orderId"`
	Priority     string             `json:"priority"`
	Status       string             `json:"status"`
	PlannedStart time.Time          `json:"plannedStart"`
	PlannedEnd   time.Time          `json:"plannedEnd"`
	ActualStart  *time.Time         `json:"actualStart,omitempty"`
	ActualEnd    *time.Time         `json:"actualEnd,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	Stops        []StopResponse     `json:"stops"`
}

type StatusEventResponse struct {
	ID          openapi_types.UUID `json:"id"`
	Status      string             `json:"status"`
	Description string             `json:"description"`
	Location    *string            `json:"location,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

type DispatchResponse struct {
	ID           openapi_types.UUID   `json:"id"`
	ShipmentID   openapi_types.UUID   `json:"shipmentId"`
	VehicleID    openapi_types.UUID   `json:"vehicleId"`
	DriverID     openapi_types.UUID   `json:"driverId"`
	LicensePlate string               `json:"licensePlate,omitempty"`
	DriverName   string               `json:"driverName,omitempty"`
	AssignedBy   string               `json:"assignedBy"`
	AssignedAt   time.Time            `json:"assignedAt"`
	Notes        string               `json:"notes,omitempty"`
	Event        *StatusEventResponse `json:"event,omitempty"`
}

type TransitionResponse struct {
	Shipment ShipmentResponse    `json:"shipment"`
	Event    StatusEventResponse `json:"event"`
}

type ShipmentDetailResponse struct {
	ShipmentResponse
	OrderNumber string                `json:"orderNumber"`
	Dispatch    *DispatchResponse     `json:"dispatch,omitempty"`
	Events      []StatusEventResponse `json:"events"`
}

type ShipmentSummaryResponse struct {
	ID           openapi_types.UUID    `json:"id"`
	Number       string                `json:"number"`
	OrderNumber  string                `json:"orderNumber"`
	Priority     string                `json:"priority"`
	Status       string                `json:"status"`
	PlannedStart time.Time             `json:"plannedStart"`
	PlannedEnd   time.Time             `json:"plannedEnd"`
	CreatedAt    time.Time             `json:"createdAt"`
	RecentEvents []StatusEventResponse `json:"recentEvents"`
}

type PendingShipmentResponse struct {
	ID           openapi_types.UUID `json:"id"`
	Number       string             `json:"number"`
	OrderID      openapi_types.UUID `json:"orderId"`
	OrderNumber  string             `json:"orderNumber"`
	Priority     string             `json:"priority"`
	PlannedStart time.Time          `json:"plannedStart"`
	PlannedEnd   time.Time          `json:"plannedEnd"`
	StopCount    int                `json:"stopCount"`
	Origin       string             `json:"origin"`
	Destination  string             `json:"destination"`
}

type VehicleResponse struct {
	ID           openapi_types.UUID `json:"id"`
	LicensePlate string             `json:"licensePlate"`
	Type         string             `json:"type"`
}

type DriverResponse struct {
	ID       openapi_types.UUID `json:"id"`
	FullName string             `json:"fullName"`
	Phone    string             `json:"phone"`
	Busy     bool               `json:"busy"`
}

// spec converts a request stop; sequence rules are checked by the domain.
func (r StopRequest) spec() (shipment.StopSpec, error) {
	stopType, err := shipment.ParseStopType(r.Type)
	if err != nil {
		return shipment.StopSpec{}, err
	}
	return shipment.StopSpec{
		Sequence:            r.Sequence,
		Type:                stopType,
		LocationName:        r.LocationName,
		Address:             r.Address,
		ContactPerson:       r.ContactPerson,
		ContactPhone:        r.ContactPhone,
		SpecialInstructions: r.SpecialInstructions,
		PlannedArrival:      r.PlannedArrival,
		PlannedDeparture:    r.PlannedDeparture,
	}, nil
}

func stopSpecs(stops []StopRequest) ([]shipment.StopSpec, error) {
	if stops == nil {
		return nil, nil
	}
	specs := make([]shipment.StopSpec, 0, len(stops))
	for _, s := range stops {
		spec, err := s.spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (r StopUpdateRequest) update() (shipment.StopUpdate, error) {
	stopID, err := kernelID(r.StopID)
	if err != nil {
		return shipment.StopUpdate{}, err
	}
	return shipment.StopUpdate{
		StopID:          stopID,
		ActualArrival:   r.ActualArrival,
		ActualDeparture: r.ActualDeparture,
	}, nil
}

func kernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toStopResponse(s *shipment.Stop) StopResponse {
	return StopResponse{
		ID:                  s.ID().Bytes(),
		Sequence:            s.Sequence(),
		Type:                s.Type().String(),
		LocationName:        s.LocationName(),
		Address:             s.Address(),
		ContactPerson:       s.ContactPerson(),
		ContactPhone:        s.ContactPhone(),
		SpecialInstructions: s.SpecialInstructions(),
		PlannedArrival:      s.Planned().Start(),
		PlannedDeparture:    s.Planned().End(),
		ActualArrival:       s.ActualArrival(),
		ActualDeparture:     s.ActualDeparture(),
	}
}

func toShipmentResponse(s *shipment.Shipment) ShipmentResponse {
	stops := s.Stops()
	resp := ShipmentResponse{
		ID:           s.ID().Bytes(),
		Number:       s.Number().String(),
		OrderID:      s.OrderID().Bytes(),
		Priority:     s.Priority().String(),
		Status:       s.Status().String(),
		PlannedStart: s.Planned().Start(),
		PlannedEnd:   s.Planned().End(),
		ActualStart:  s.ActualStart(),
		ActualEnd:    s.ActualEnd(),
		CreatedAt:    s.CreatedAt(),
		Stops:        make([]StopResponse, 0, len(stops)),
	}
	for _, stop := range stops {
		resp.Stops = append(resp.Stops, toStopResponse(stop))
	}
	return resp
}

func toEventResponse(e *shipment.StatusEvent) StatusEventResponse {
	return StatusEventResponse{
		ID:          e.ID().Bytes(),
		Status:      e.Status().String(),
		Description: e.Description(),
		Location:    e.Location(),
		CreatedAt:   e.CreatedAt(),
		CreatedBy:   e.CreatedBy(),
	}
}

func toAssignmentResponse(a services.Assignment) DispatchResponse {
	d := a.Dispatch
	resp := DispatchResponse{
		ID:         d.ID().Bytes(),
		ShipmentID: d.ShipmentID().Bytes(),
		VehicleID:  d.VehicleID().Bytes(),
		DriverID:   d.DriverID().Bytes(),
		AssignedBy: d.AssignedBy(),
		AssignedAt: d.AssignedAt(),
		Notes:      d.Notes(),
	}
	if a.Event != nil {
		event := toEventResponse(a.Event)
		resp.Event = &event
	}
	return resp
}

func stopViewResponse(v queries.StopView) StopResponse {
	return StopResponse{
		ID:                  v.ID.Bytes(),
		Sequence:            v.Sequence,
		Type:                v.Type.String(),
		LocationName:        v.LocationName,
		Address:             v.Address,
		ContactPerson:       v.ContactPerson,
		ContactPhone:        v.ContactPhone,
		SpecialInstructions: v.SpecialInstructions,
		PlannedArrival:      v.PlannedArrival,
		PlannedDeparture:    v.PlannedDeparture,
		ActualArrival:       v.ActualArrival,
		ActualDeparture:     v.ActualDeparture,
	}
}

func eventViewResponses(views []queries.EventView) []StatusEventResponse {
	resp := make([]StatusEventResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, StatusEventResponse{
			ID:          v.ID.Bytes(),
			Status:      v.Status.String(),
			Description: v.Description,
			Location:    v.Location,
			CreatedAt:   v.CreatedAt,
			CreatedBy:   v.CreatedBy,
		})
	}
	return resp
}

func toDetailResponse(d queries.GetShipmentDetailsQueryResponse) ShipmentDetailResponse {
	resp := ShipmentDetailResponse{
		ShipmentResponse: ShipmentResponse{
			ID:           d.ID.Bytes(),
			Number:       d.Number,
			OrderID:      d.OrderID.Bytes(),
			Priority:     d.Priority.String(),
			Status:       d.Status.String(),
			PlannedStart: d.PlannedStart,
			PlannedEnd:   d.PlannedEnd,
			ActualStart:  d.ActualStart,
			ActualEnd:    d.ActualEnd,
			CreatedAt:    d.CreatedAt,
			Stops:        make([]StopResponse, 0, len(d.Stops)),
		},
		OrderNumber: d.OrderNumber,
		Events:      eventViewResponses(d.Events),
	}
	for _, s := range d.Stops {
		resp.Stops = append(resp.Stops, stopViewResponse(s))
	}
	if d.Dispatch != nil {
		resp.Dispatch = &DispatchResponse{
			ID:           d.Dispatch.ID.Bytes(),
			ShipmentID:   d.ID.Bytes(),
			VehicleID:    d.Dispatch.VehicleID.Bytes(),
			DriverID:     d.Dispatch.DriverID.Bytes(),
			LicensePlate: d.Dispatch.LicensePlate,
			DriverName:   d.Dispatch.DriverName,
			AssignedBy:   d.Dispatch.AssignedBy,
			AssignedAt:   d.Dispatch.AssignedAt,
			Notes:        d.Dispatch.Notes,
		}
	}
	return resp
}
