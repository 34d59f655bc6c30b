package kernel

import (
	"errors"
	"fmt"
	"time"

	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when validating a zero-value TimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError("time window must be created via NewTimeWindow")

// TimeWindow is a planned interval, such as a shipment's planned start and end
// or a stop's planned arrival and departure. Start never comes after End.
type TimeWindow struct {
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow builds a window from two non-zero instants with start <= end.
// Instants are normalised to UTC.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if err := errors.Join(
		requireInstant("start", start),
		requireInstant("end", end),
	); err != nil {
		return TimeWindow{}, err
	}
	if end.Before(start) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window is invalid",
			fmt.Errorf("end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)),
		)
	}

	return TimeWindow{
		start: start.UTC(),
		end:   end.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

// Duration is zero for a window whose start equals its end.
func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s]", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

func requireInstant(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
