package http

import (
	"net/http"

	"freightops/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetAvailableVehicles handles GET /api/v1/vehicles/available.
func (s *Server) GetAvailableVehicles(c echo.Context) error {
	rows, err := s.handlers.AvailableVehicles.Handle(c.Request().Context(), queries.NewGetAvailableVehiclesQuery())
	if err != nil {
		return err
	}

	resp := make([]VehicleResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, VehicleResponse{
			ID:           r.ID.Bytes(),
			LicensePlate: r.LicensePlate,
			Type:         r.Type.String(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAvailableDrivers handles GET /api/v1/drivers/available. Busy drivers are
// listed and flagged.
func (s *Server) GetAvailableDrivers(c echo.Context) error {
	rows, err := s.handlers.AvailableDrivers.Handle(c.Request().Context(), queries.NewGetAvailableDriversQuery())
	if err != nil {
		return err
	}

	resp := make([]DriverResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, DriverResponse{
			ID:       r.ID.Bytes(),
			FullName: r.FullName,
			Phone:    r.Phone,
			Busy:     r.Busy,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
