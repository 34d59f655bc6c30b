package queries

import (
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// StopView is a stop as shown in shipment detail.
type StopView struct {
	ID                  kernel.UUID
	Sequence            int
	Type                shipment.StopType
	LocationName        string
	Address             string
	ContactPerson       string
	ContactPhone        string
	SpecialInstructions string
	PlannedArrival      time.Time
	PlannedDeparture    time.Time
	ActualArrival       *time.Time
	ActualDeparture     *time.Time
}

// EventView is one entry of a shipment's status history.
type EventView struct {
	ID          kernel.UUID
	Status      shipment.Status
	Description string
	Location    *string
	CreatedAt   time.Time
	CreatedBy   string
}

type stopRow struct {
	ID                  uuid.UUID
	ShipmentID          uuid.UUID
	Sequence            int
	StopType            string
	LocationName        string
	Address             string
	ContactPerson       string
	ContactPhone        string
	SpecialInstructions string
	PlannedArrival      time.Time
	PlannedDeparture    time.Time
	ActualArrival       *time.Time
	ActualDeparture     *time.Time
}

func (r stopRow) view() (StopView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return StopView{}, err
	}
	stopType, err := shipment.ParseStopType(r.StopType)
	if err != nil {
		return StopView{}, err
	}
	return StopView{
		ID:                  id,
		Sequence:            r.Sequence,
		Type:                stopType,
		LocationName:        r.LocationName,
		Address:             r.Address,
		ContactPerson:       r.ContactPerson,
		ContactPhone:        r.ContactPhone,
		SpecialInstructions: r.SpecialInstructions,
		PlannedArrival:      r.PlannedArrival.UTC(),
		PlannedDeparture:    r.PlannedDeparture.UTC(),
		ActualArrival:       utc(r.ActualArrival),
		ActualDeparture:     utc(r.ActualDeparture),
	}, nil
}

type eventRow struct {
	ID          uuid.UUID
	ShipmentID  uuid.UUID
	Status      string
	Description string
	Location    *string
	CreatedAt   time.Time
	CreatedBy   string
}

func (r eventRow) view() (EventView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return EventView{}, err
	}
	status, err := shipment.ParseStatus(r.Status)
	if err != nil {
		return EventView{}, err
	}
	return EventView{
		ID:          id,
		Status:      status,
		Description: r.Description,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt.UTC(),
		CreatedBy:   r.CreatedBy,
	}, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
