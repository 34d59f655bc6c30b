package queries

import (
	"context"

	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAvailableVehiclesQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableVehiclesQueryHandler(db *gorm.DB) GetAvailableVehiclesQueryHandler {
	return GetAvailableVehiclesQueryHandler{db: db}
}

// Handle returns vehicles in AVAILABLE status ordered by license plate.
func (h GetAvailableVehiclesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableVehiclesQuery,
) ([]GetAvailableVehiclesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		ID           uuid.UUID
		LicensePlate string
		VehicleType  string
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, license_plate, vehicle_type
		FROM vehicles
		WHERE status = ?
		ORDER BY license_plate
	`, vehicle.Available.String()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]GetAvailableVehiclesQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		vehicleType, err := vehicle.ParseType(row.VehicleType)
		if err != nil {
			return nil, err
		}
		result = append(result, GetAvailableVehiclesQueryResponse{
			ID:           id,
			LicensePlate: row.LicensePlate,
			Type:         vehicleType,
		})
	}
	return result, nil
}

type GetAvailableDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableDriversQueryHandler(db *gorm.DB) GetAvailableDriversQueryHandler {
	return GetAvailableDriversQueryHandler{db: db}
}

// Handle returns ACTIVE drivers ordered by full name.
func (h GetAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDriversQuery,
) ([]GetAvailableDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		ID       uuid.UUID
		FullName string
		Phone    string
		Busy     bool
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT
			dr.id,
			dr.full_name,
			COALESCE(dr.phone, '') AS phone,
			EXISTS (
				SELECT 1
				FROM dispatches d
				JOIN shipments s ON s.id = d.shipment_id
				WHERE d.driver_id = dr.id AND s.status IN ?
			) AS busy
		FROM drivers dr
		WHERE dr.status = ?
		ORDER BY dr.full_name, dr.id
	`,
		[]string{shipment.Assigned.String(), shipment.InTransit.String()},
		driver.Active.String(),
	).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]GetAvailableDriversQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		result = append(result, GetAvailableDriversQueryResponse{
			ID:       id,
			FullName: row.FullName,
			Phone:    row.Phone,
			Busy:     row.Busy,
		})
	}
	return result, nil
}
