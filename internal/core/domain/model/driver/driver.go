// Package driver models the people who operate vehicles on a dispatch.
package driver

import (
	"errors"
	"strings"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var (
	ErrFullNameIsRequired     = errs.NewValueIsRequiredError("fullName")
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver is read-only for the dispatch core: it is checked for Active status
// and locked during assignment, but never modified here.
type Driver struct {
	id       kernel.UUID
	fullName string
	phone    string
	status   Status
	guard    guard.ConstructorGuard
}

// NewDriver registers an Active driver. Phone is optional.
func NewDriver(id kernel.UUID, fullName, phone string) (*Driver, error) {
	return RestoreDriver(id, fullName, phone, Active)
}

func RestoreDriver(id kernel.UUID, fullName, phone string, status Status) (*Driver, error) {
	d := &Driver{
		phone: strings.TrimSpace(phone),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setFullName(fullName),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) FullName() string {
	return d.fullName
}

func (d *Driver) Phone() string {
	return d.phone
}

func (d *Driver) Status() Status {
	return d.status
}

func (d *Driver) IsActive() bool {
	return d.status == Active
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFullNameIsRequired
	}
	d.fullName = name
	return nil
}

func (d *Driver) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.status = s
	return nil
}
