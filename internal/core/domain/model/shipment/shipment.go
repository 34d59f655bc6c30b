package shipment

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is the aggregate root for a planned movement of freight through an
// ordered list of stops.
//
// Invariants:
//   - at least one stop; stop sequences are unique and start at 1
//   - status changes follow the lifecycle table of Status
//   - Assigned is entered only through Assign, which the dispatch flow calls
//     after creating the Dispatch record
//   - every status change yields exactly one StatusEvent
//   - Completed requires actual arrival and departure on every stop
//   - Completed and Cancelled shipments are frozen
type Shipment struct {
	id          kernel.UUID
	number      Number
	orderID     kernel.UUID
	priority    Priority
	status      Status
	planned     kernel.TimeWindow
	actualStart *time.Time
	actualEnd   *time.Time
	createdAt   time.Time
	stops       []*Stop
	guard       guard.ConstructorGuard
}

// NewShipment creates a Draft shipment. Stops must come from NewStops so that
// they are already validated and ordered.
func NewShipment(
	id kernel.UUID,
	number Number,
	orderID kernel.UUID,
	priority Priority,
	planned kernel.TimeWindow,
	stops []*Stop,
	createdAt time.Time,
) (*Shipment, error) {
	return RestoreShipment(id, number, orderID, priority, Draft, planned, nil, nil, createdAt, stops)
}

func RestoreShipment(
	id kernel.UUID,
	number Number,
	orderID kernel.UUID,
	priority Priority,
	status Status,
	planned kernel.TimeWindow,
	actualStart *time.Time,
	actualEnd *time.Time,
	createdAt time.Time,
	stops []*Stop,
) (*Shipment, error) {
	s := &Shipment{
		actualStart: utcCopy(actualStart),
		actualEnd:   utcCopy(actualEnd),
		createdAt:   createdAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setNumber(number),
		s.setOrderID(orderID),
		s.setPriority(priority),
		s.setStatus(status),
		s.setPlanned(planned),
		s.setStops(stops),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID { return s.id }
func (s *Shipment) Number() Number { return s.number }
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }
func (s *Shipment) Priority() Priority { return s.priority }
func (s *Shipment) Status() Status { return s.status }
func (s *Shipment) Planned() kernel.TimeWindow { return s.planned }
func (s *Shipment) ActualStart() *time.Time { return copyTime(s.actualStart) }
func (s *Shipment) ActualEnd() *time.Time { return copyTime(s.actualEnd) }
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// Stops returns the stops ordered by sequence.
func (s *Shipment) Stops() []*Stop {
	out := make([]*Stop, len(s.stops))
	copy(out, s.stops)
	return out
}

// Stop finds a stop of this shipment by ID.
func (s *Shipment) Stop(id kernel.UUID) (*Stop, error) {
	for _, stop := range s.stops {
		if stop.id.IsEqual(id) {
			return stop, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stop", id.String())
}

func (s *Shipment) ChangePriority(p Priority) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	return s.setPriority(p)
}

func (s *Shipment) Reschedule(planned kernel.TimeWindow) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	return s.setPlanned(planned)
}

// ReplaceStops swaps the whole stop list; recorded actual times of the old
// stops are discarded with them.
func (s *Shipment) ReplaceStops(stops []*Stop) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	return s.setStops(stops)
}

// Assign moves a Ready shipment to Assigned and returns the audit event
// naming the vehicle and driver put on it.
func (s *Shipment) Assign(licensePlate, driverName, actorID string, at time.Time) (*StatusEvent, error) {
	if s.status != Ready {
		return nil, errs.NewPreconditionFailedErrorWithCause(
			"shipment", s.id.String(), "shipment not ready",
			fmt.Errorf("status is %s, expected %s", s.status, Ready),
		)
	}

	event, err := NewStatusEvent(
		s.id,
		Assigned,
		fmt.Sprintf("Shipment assigned to vehicle %s and driver %s", licensePlate, driverName),
		nil,
		actorID,
		at,
	)
	if err != nil {
		return nil, err
	}

	s.status = Assigned
	return event, nil
}

// Transition is the result of a successful status change.
type Transition struct {
	Event        *StatusEvent
	UpdatedStops []*Stop
}

// TransitionTo moves the shipment to target, applying stop time updates first.
//
// Checks, in order:
//   - target Assigned is refused: it belongs to Assign
//   - the lifecycle table must allow current -> target
//   - every update must reference a stop of this shipment with consistent times
//   - for Completed, every stop must end up with actual arrival and departure
//
// Nothing is changed when an error is returned.
func (s *Shipment) TransitionTo(
	target Status,
	description string,
	location *string,
	updates []StopUpdate,
	actorID string,
	at time.Time,
) (Transition, error) {
	if target == Assigned {
		return Transition{}, errs.NewInvalidTransitionError(s.status.String(), target.String())
	}
	if _, err := s.status.TransitionTo(target); err != nil {
		return Transition{}, err
	}

	touched := make([]*Stop, 0, len(updates))
	pending := make(map[*Stop]StopUpdate, len(updates))
	for _, u := range updates {
		stop, err := s.Stop(u.StopID)
		if err != nil {
			return Transition{}, err
		}
		if prev, ok := pending[stop]; ok {
			u = mergeUpdates(prev, u)
		} else {
			touched = append(touched, stop)
		}
		if err = stop.checkActuals(stop.merged(u)); err != nil {
			return Transition{}, err
		}
		pending[stop] = u
	}

	if target == Completed {
		if err := s.checkStopsComplete(pending); err != nil {
			return Transition{}, err
		}
	}

	event, err := NewStatusEvent(s.id, target, description, location, actorID, at)
	if err != nil {
		return Transition{}, err
	}

	for _, stop := range touched {
		if err = stop.recordActuals(stop.merged(pending[stop])); err != nil {
			return Transition{}, err
		}
	}

	s.status = target
	switch target {
	case InTransit:
		if s.actualStart == nil {
			s.actualStart = utcCopy(&at)
		}
	case Completed:
		s.actualEnd = utcCopy(&at)
	}

	return Transition{Event: event, UpdatedStops: touched}, nil
}

func (s *Shipment) checkStopsComplete(pending map[*Stop]StopUpdate) error {
	var missing []string
	for _, stop := range s.stops {
		arrival, departure := stop.actualArrival, stop.actualDeparture
		if u, ok := pending[stop]; ok {
			arrival, departure = stop.merged(u)
		}
		if arrival == nil || departure == nil {
			missing = append(missing, fmt.Sprintf("%d", stop.sequence))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errs.NewPreconditionFailedErrorWithCause(
		"shipment", s.id.String(), "incomplete stop records",
		fmt.Errorf("stops without actual arrival or departure: %s", strings.Join(missing, ", ")),
	)
}

func (s *Shipment) ensureEditable() error {
	if s.status.IsTerminal() {
		return errs.NewPreconditionFailedErrorWithCause(
			"shipment", s.id.String(), "shipment is closed",
			fmt.Errorf("status is %s", s.status),
		)
	}
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setNumber(n Number) error {
	parsed, err := ParseNumber(string(n))
	if err != nil {
		return err
	}
	s.number = parsed
	return nil
}

func (s *Shipment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.orderID = id
	return nil
}

func (s *Shipment) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.priority = p
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setPlanned(w kernel.TimeWindow) error {
	if err := w.Validate(); err != nil {
		return err
	}
	s.planned = w
	return nil
}

func (s *Shipment) setStops(stops []*Stop) error {
	if len(stops) == 0 {
		return ErrStopsAreRequired
	}

	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[int]struct{}, len(stops))
	minSeq := stops[0].sequence
	for _, stop := range stops {
		if _, dup := seen[stop.sequence]; dup {
			return ErrStopSequenceIsInvalid
		}
		seen[stop.sequence] = struct{}{}
		minSeq = min(minSeq, stop.sequence)
	}
	if minSeq != 1 {
		return ErrStopSequenceIsInvalid
	}

	ordered := slices.Clone(stops)
	slices.SortFunc(ordered, func(a, b *Stop) int {
		return cmp.Compare(a.sequence, b.sequence)
	})
	s.stops = ordered
	return nil
}

func mergeUpdates(prev, next StopUpdate) StopUpdate {
	if next.ActualArrival == nil {
		next.ActualArrival = prev.ActualArrival
	}
	if next.ActualDeparture == nil {
		next.ActualDeparture = prev.ActualDeparture
	}
	return next
}
