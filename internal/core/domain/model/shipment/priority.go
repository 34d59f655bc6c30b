package shipment

import (
	"fmt"
	"strings"

	"freightops/internal/pkg/errs"
)

// Priority orders shipments waiting for dispatch; higher values go first.
type Priority int

const (
	UnknownPriority Priority = iota
	Low
	Normal
	High
	Urgent
)

// DefaultPriority is used when a shipment is created without one.
const DefaultPriority = Normal

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		UnknownPriority: "UNKNOWN",
		Low:             "LOW",
		Normal:          "NORMAL",
		High:            "HIGH",
		Urgent:          "URGENT",
	}
}

// ParsePriority accepts a priority name; the empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	for p, name := range getPriorityStrings() {
		if name == s && p != UnknownPriority {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%q is not a valid priority", s))
}

func (p Priority) Validate() error {
	if _, ok := getPriorityStrings()[p]; !ok || p == UnknownPriority {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
