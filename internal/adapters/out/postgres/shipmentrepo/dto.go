package shipmentrepo

import (
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// NumberSequence backs shipment numbers. It is created by the migrations.
const NumberSequence = "shipment_number_seq"

type ShipmentDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Priority     string     `gorm:"type:varchar(16);not null"`
	Status       string     `gorm:"type:varchar(16);not null;index"`
	PlannedStart time.Time  `gorm:"type:timestamptz;not null"`
	PlannedEnd   time.Time  `gorm:"type:timestamptz;not null"`
	ActualStart  *time.Time `gorm:"type:timestamptz"`
	ActualEnd    *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time  `gorm:"type:timestamptz"`
	Stops        []StopDTO  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

type StopDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shipment_stop_sequence,priority:1"`
	Sequence            int        `gorm:"type:int;not null;uniqueIndex:idx_shipment_stop_sequence,priority:2"`
	StopType            string     `gorm:"type:varchar(16);not null"`
	LocationName        string     `gorm:"type:varchar(255);not null"`
	Address             string     `gorm:"type:text;not null"`
	ContactPerson       string     `gorm:"type:varchar(255)"`
	ContactPhone        string     `gorm:"type:varchar(64)"`
	SpecialInstructions string     `gorm:"type:text"`
	PlannedArrival      time.Time  `gorm:"type:timestamptz;not null"`
	PlannedDeparture    time.Time  `gorm:"type:timestamptz;not null"`
	ActualArrival       *time.Time `gorm:"type:timestamptz"`
	ActualDeparture     *time.Time `gorm:"type:timestamptz"`
}

func (StopDTO) TableName() string {
	return "shipment_stops"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	shipmentID := s.ID().Bytes()
	stops := make([]StopDTO, 0, len(s.Stops()))
	for _, stop := range s.Stops() {
		stops = append(stops, stopFromDomain(shipmentID, stop))
	}

	return ShipmentDTO{
		ID:           shipmentID,
		Number:       s.Number().String(),
		OrderID:      s.OrderID().Bytes(),
		Priority:     s.Priority().String(),
		Status:       s.Status().String(),
		PlannedStart: s.Planned().Start(),
		PlannedEnd:   s.Planned().End(),
		ActualStart:  s.ActualStart(),
		ActualEnd:    s.ActualEnd(),
		CreatedAt:    s.CreatedAt(),
		Stops:        stops,
	}
}

func stopFromDomain(shipmentID uuid.UUID, stop *shipment.Stop) StopDTO {
	return StopDTO{
		ID:                  stop.ID().Bytes(),
		ShipmentID:          shipmentID,
		Sequence:            stop.Sequence(),
		StopType:            stop.Type().String(),
		LocationName:        stop.LocationName(),
		Address:             stop.Address(),
		ContactPerson:       stop.ContactPerson(),
		ContactPhone:        stop.ContactPhone(),
		SpecialInstructions: stop.SpecialInstructions(),
		PlannedArrival:      stop.Planned().Start(),
		PlannedDeparture:    stop.Planned().End(),
		ActualArrival:       stop.ActualArrival(),
		ActualDeparture:     stop.ActualDeparture(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	number, err := shipment.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}
	priority, err := shipment.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	planned, err := kernel.NewTimeWindow(dto.PlannedStart, dto.PlannedEnd)
	if err != nil {
		return nil, err
	}

	stops := make([]*shipment.Stop, 0, len(dto.Stops))
	for _, stopDto := range dto.Stops {
		stop, stopErr := stopToDomain(stopDto)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, stop)
	}

	return shipment.RestoreShipment(id, number, orderID, priority, status, planned,
		dto.ActualStart, dto.ActualEnd, dto.CreatedAt, stops)
}

func stopToDomain(dto StopDTO) (*shipment.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	stopType, err := shipment.ParseStopType(dto.StopType)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreStop(id, shipment.StopSpec{
		Sequence:            dto.Sequence,
		Type:                stopType,
		LocationName:        dto.LocationName,
		Address:             dto.Address,
		ContactPerson:       dto.ContactPerson,
		ContactPhone:        dto.ContactPhone,
		SpecialInstructions: dto.SpecialInstructions,
		PlannedArrival:      dto.PlannedArrival,
		PlannedDeparture:    dto.PlannedDeparture,
	}, dto.ActualArrival, dto.ActualDeparture)
}
