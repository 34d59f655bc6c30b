// Package vehicle models fleet units that can be dispatched on shipments.
package vehicle

import (
	"errors"
	"strings"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	ErrLicensePlateIsRequired  = errs.NewValueIsRequiredError("licensePlate")
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle is a tractor or trailer of the fleet.
//
// Business rules:
//   - a vehicle can be put on a dispatch only while Available
//   - dispatch assignment is the only operation of this service that
//     changes the status; releasing a vehicle belongs to fleet management
type Vehicle struct {
	id           kernel.UUID
	licensePlate string
	vehicleType  Type
	status       Status
	guard        guard.ConstructorGuard
}

// NewVehicle registers a vehicle in Available status.
func NewVehicle(id kernel.UUID, licensePlate string, vehicleType Type) (*Vehicle, error) {
	return RestoreVehicle(id, licensePlate, vehicleType, Available)
}

func RestoreVehicle(id kernel.UUID, licensePlate string, vehicleType Type, status Status) (*Vehicle, error) {
	v := &Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setLicensePlate(licensePlate),
		v.setType(vehicleType),
		v.setStatus(status),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) LicensePlate() string {
	return v.licensePlate
}

func (v *Vehicle) Type() Type {
	return v.vehicleType
}

func (v *Vehicle) Status() Status {
	return v.status
}

func (v *Vehicle) IsAvailable() bool {
	return v.status == Available
}

// MarkInUse reserves the vehicle for a dispatch.
func (v *Vehicle) MarkInUse() error {
	newStatus, err := v.status.MarkInUse()
	if err != nil {
		return err
	}
	v.status = newStatus
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setLicensePlate(plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return ErrLicensePlateIsRequired
	}
	v.licensePlate = plate
	return nil
}

func (v *Vehicle) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	v.vehicleType = t
	return nil
}

func (v *Vehicle) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	v.status = s
	return nil
}
