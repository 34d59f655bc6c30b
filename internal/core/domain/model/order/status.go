package order

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// Status is the commercial state of a customer order.
//
//	Pending ──> Confirmed ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
//
// Only Confirmed orders may receive new shipments.
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Confirmed: "CONFIRMED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid order status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Confirm moves a Pending order to Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s),
		)
	}
	return Confirmed, nil
}

// Cancel is allowed from any non-final status.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Confirmed {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return Cancelled, nil
}
