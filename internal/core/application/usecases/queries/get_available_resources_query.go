package queries

import (
	"errors"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/vehicle"
	"freightops/internal/pkg/guard"
)

var (
	ErrGetAvailableVehiclesQueryIsNotConstructed = errors.New(
		"GetAvailableVehiclesQuery must be created via NewGetAvailableVehiclesQuery constructor",
	)
	ErrGetAvailableDriversQueryIsNotConstructed = errors.New(
		"GetAvailableDriversQuery must be created via NewGetAvailableDriversQuery constructor",
	)
)

// GetAvailableVehiclesQuery lists vehicles a dispatcher can put on a shipment.
type GetAvailableVehiclesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAvailableVehiclesQuery() GetAvailableVehiclesQuery {
	return GetAvailableVehiclesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAvailableVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableVehiclesQueryIsNotConstructed)
}

type GetAvailableVehiclesQueryResponse struct {
	ID           kernel.UUID
	LicensePlate string
	Type         vehicle.Type
}

// GetAvailableDriversQuery lists active drivers. A driver already on an
// active dispatch is still listed with Busy set, since the assignment is
// what refuses double booking.
type GetAvailableDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAvailableDriversQuery() GetAvailableDriversQuery {
	return GetAvailableDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAvailableDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDriversQueryIsNotConstructed)
}

type GetAvailableDriversQueryResponse struct {
	ID       kernel.UUID
	FullName string
	Phone    string
	Busy     bool
}
