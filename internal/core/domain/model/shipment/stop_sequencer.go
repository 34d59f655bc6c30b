package shipment

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"freightops/internal/pkg/errs"
)

var (
	ErrStopsAreRequired      = errs.NewValueIsRequiredError("at least one stop required")
	ErrStopSequenceIsInvalid = errs.NewValueIsInvalidError("non-contiguous or duplicate stop sequence")
)

// StopSpec is the caller's description of a stop before it is persisted.
type StopSpec struct {
	Sequence            int
	Type                StopType
	LocationName        string
	Address             string
	ContactPerson       string
	ContactPhone        string
	SpecialInstructions string
	PlannedArrival      time.Time
	PlannedDeparture    time.Time
}

// Validate checks the fields of a single stop. Sequence rules that span the
// whole list are checked by ValidateStops.
func (s StopSpec) Validate() error {
	var errList []error

	if s.Sequence < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("sequence", s.Sequence, 1, "unbounded"))
	}
	errList = append(errList, s.Type.Validate())
	if strings.TrimSpace(s.LocationName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("stop %d location name", s.Sequence)))
	}
	if strings.TrimSpace(s.Address) == "" {
		errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("stop %d address", s.Sequence)))
	}
	switch {
	case s.PlannedArrival.IsZero() || s.PlannedDeparture.IsZero():
		errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("stop %d planned arrival and departure", s.Sequence)))
	case !s.PlannedArrival.Before(s.PlannedDeparture):
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("stop %d planned window", s.Sequence),
			fmt.Errorf("arrival %s is not before departure %s",
				s.PlannedArrival.Format(time.RFC3339), s.PlannedDeparture.Format(time.RFC3339)),
		))
	}

	return errors.Join(errList...)
}

// ValidateStops checks a candidate stop list and returns a copy ordered by
// sequence. Sequences must be unique and the smallest must be 1; gaps are
// allowed so stops can later be inserted between existing ones.
func ValidateStops(specs []StopSpec) ([]StopSpec, error) {
	if len(specs) == 0 {
		return nil, ErrStopsAreRequired
	}

	var errList []error
	for _, spec := range specs {
		errList = append(errList, spec.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	sorted := slices.Clone(specs)
	slices.SortStableFunc(sorted, func(a, b StopSpec) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})

	if sorted[0].Sequence != 1 {
		return nil, ErrStopSequenceIsInvalid
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sequence == sorted[i-1].Sequence {
			return nil, ErrStopSequenceIsInvalid
		}
	}

	return sorted, nil
}
