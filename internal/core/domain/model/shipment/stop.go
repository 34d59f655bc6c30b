package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop constructor")

// Stop is one planned visit of a shipment. Stops are owned by exactly one
// shipment and are only changed through it.
type Stop struct {
	id                  kernel.UUID
	sequence            int
	stopType            StopType
	locationName        string
	address             string
	contactPerson       string
	contactPhone        string
	specialInstructions string
	planned             kernel.TimeWindow
	actualArrival       *time.Time
	actualDeparture     *time.Time
	guard               guard.ConstructorGuard
}

// StopUpdate records actual times observed at a stop. Nil fields are left untouched.
type StopUpdate struct {
	StopID          kernel.UUID
	ActualArrival   *time.Time
	ActualDeparture *time.Time
}

// NewStop builds a stop from a spec that passed ValidateStops.
func NewStop(id kernel.UUID, spec StopSpec) (*Stop, error) {
	return RestoreStop(id, spec, nil, nil)
}

// NewStops validates specs and creates stops ordered by sequence.
func NewStops(specs []StopSpec) ([]*Stop, error) {
	ordered, err := ValidateStops(specs)
	if err != nil {
		return nil, err
	}

	stops := make([]*Stop, 0, len(ordered))
	for _, spec := range ordered {
		stop, err := NewStop(kernel.NewUUID(), spec)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func RestoreStop(id kernel.UUID, spec StopSpec, actualArrival, actualDeparture *time.Time) (*Stop, error) {
	if err := errors.Join(id.Validate(), spec.Validate()); err != nil {
		return nil, err
	}

	planned, err := kernel.NewTimeWindow(spec.PlannedArrival, spec.PlannedDeparture)
	if err != nil {
		return nil, err
	}

	stop := &Stop{
		id:                  id,
		sequence:            spec.Sequence,
		stopType:            spec.Type,
		locationName:        strings.TrimSpace(spec.LocationName),
		address:             strings.TrimSpace(spec.Address),
		contactPerson:       strings.TrimSpace(spec.ContactPerson),
		contactPhone:        strings.TrimSpace(spec.ContactPhone),
		specialInstructions: spec.SpecialInstructions,
		planned:             planned,
		guard:               guard.NewConstructorGuard(),
	}
	if err = stop.recordActuals(actualArrival, actualDeparture); err != nil {
		return nil, err
	}

	return stop, nil
}

func (s *Stop) Validate() error {
	if s == nil {
		return ErrStopIsNotConstructed
	}
	return s.guard.Validate(ErrStopIsNotConstructed)
}

func (s *Stop) IsEqual(other *Stop) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Stop) ID() kernel.UUID { return s.id }
func (s *Stop) Sequence() int { return s.sequence }
func (s *Stop) Type() StopType { return s.stopType }
func (s *Stop) LocationName() string { return s.locationName }
func (s *Stop) Address() string { return s.address }
func (s *Stop) ContactPerson() string { return s.contactPerson }
func (s *Stop) ContactPhone() string { return s.contactPhone }
func (s *Stop) SpecialInstructions() string { return s.specialInstructions }
func (s *Stop) Planned() kernel.TimeWindow { return s.planned }
func (s *Stop) ActualArrival() *time.Time { return copyTime(s.actualArrival) }
func (s *Stop) ActualDeparture() *time.Time { return copyTime(s.actualDeparture) }

// IsComplete reports whether both actual arrival and departure are recorded.
func (s *Stop) IsComplete() bool {
	return s.actualArrival != nil && s.actualDeparture != nil
}

// Spec returns the planned attributes of the stop.
func (s *Stop) Spec() StopSpec {
	return StopSpec{
		Sequence:            s.sequence,
		Type:                s.stopType,
		LocationName:        s.locationName,
		Address:             s.address,
		ContactPerson:       s.contactPerson,
		ContactPhone:        s.contactPhone,
		SpecialInstructions: s.specialInstructions,
		PlannedArrival:      s.planned.Start(),
		PlannedDeparture:    s.planned.End(),
	}
}

// merged returns the actual times the stop would hold after applying u.
func (s *Stop) merged(u StopUpdate) (arrival, departure *time.Time) {
	arrival, departure = s.actualArrival, s.actualDeparture
	if u.ActualArrival != nil {
		arrival = u.ActualArrival
	}
	if u.ActualDeparture != nil {
		departure = u.ActualDeparture
	}
	return arrival, departure
}

func (s *Stop) checkActuals(arrival, departure *time.Time) error {
	if arrival != nil && departure != nil && departure.Before(*arrival) {
		return errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("stop %d actual times", s.sequence),
			fmt.Errorf("departure %s is before arrival %s", departure.Format(time.RFC3339), arrival.Format(time.RFC3339)),
		)
	}
	return nil
}

func (s *Stop) recordActuals(arrival, departure *time.Time) error {
	if err := s.checkActuals(arrival, departure); err != nil {
		return err
	}
	s.actualArrival = utcCopy(arrival)
	s.actualDeparture = utcCopy(departure)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func utcCopy(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
