package shipment

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
//	Draft ──> Ready ──> Assigned ──> InTransit ──> Completed
//	  │         │          │             │
//	  └─────────┴──────────┴─────────────┴──> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	Unknown Status = iota
	Draft
	Ready
	Assigned
	InTransit
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Draft:     "DRAFT",
		Ready:     "READY",
		Assigned:  "ASSIGNED",
		InTransit: "IN_TRANSIT",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:     {Ready, Cancelled},
		Ready:     {Assigned, Cancelled},
		Assigned:  {InTransit, Cancelled},
		InTransit: {Completed, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// ParseStatus maps a status name ("IN_TRANSIT") to its value.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid shipment status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// AllowedNext lists the statuses reachable from s in one step.
func (s Status) AllowedNext() []Status {
	next := getAllowedTransitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getAllowedTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the lifecycle table allows it and an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
