package shipment

import (
	"fmt"
	"strings"

	"freightops/internal/pkg/errs"
)

// StopType says what happens at a stop.
type StopType int

const (
	UnknownStopType StopType = iota
	Pickup
	Dropoff
	Depot
	Port
)

func getStopTypeStrings() map[StopType]string {
	return map[StopType]string{
		UnknownStopType: "UNKNOWN",
		Pickup:          "PICKUP",
		Dropoff:         "DROPOFF",
		Depot:           "DEPOT",
		Port:            "PORT",
	}
}

func ParseStopType(s string) (StopType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range getStopTypeStrings() {
		if name == s && t != UnknownStopType {
			return t, nil
		}
	}
	return UnknownStopType, errs.NewValueIsInvalidErrorWithCause("stop type is invalid", fmt.Errorf("%q is not a valid stop type", s))
}

func (t StopType) Validate() error {
	if _, ok := getStopTypeStrings()[t]; !ok || t == UnknownStopType {
		return errs.NewValueIsInvalidErrorWithCause("stop type is invalid", fmt.Errorf("%d is not a valid stop type", t))
	}
	return nil
}

func (t StopType) String() string {
	if str, ok := getStopTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
