package vehicle

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// Status is the operational state of a vehicle.
//
//	Available ──> InUse          (dispatch assignment)
//	InUse ──> Available          (released by fleet management)
//	any ──> Maintenance | OutOfService
type Status int

const (
	UnknownStatus Status = iota
	Available
	InUse
	Maintenance
	OutOfService
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Available:     "AVAILABLE",
		InUse:         "IN_USE",
		Maintenance:   "MAINTENANCE",
		OutOfService:  "OUT_OF_SERVICE",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != UnknownStatus {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid vehicle status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == UnknownStatus {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid vehicle status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarkInUse is only valid from Available.
func (s Status) MarkInUse() (Status, error) {
	if s != Available {
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to put a vehicle in use", s),
		)
	}
	return InUse, nil
}

// Type distinguishes powered units from towed units.
type Type int

const (
	UnknownType Type = iota
	Tractor
	Trailer
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType: "UNKNOWN",
		Tractor:     "TRACTOR",
		Trailer:     "TRAILER",
	}
}

func ParseType(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if name == s && t != UnknownType {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("vehicle type is invalid", fmt.Errorf("%q is not a valid vehicle type", s))
}

func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == UnknownType {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type is invalid", fmt.Errorf("%d is not a valid vehicle type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
