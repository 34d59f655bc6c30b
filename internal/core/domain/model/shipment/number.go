package shipment

import (
	"fmt"
	"strconv"
	"strings"

	"freightops/internal/pkg/errs"
)

const numberPrefix = "SHP"

// Number is the human-facing shipment reference, "SHP" followed by a
// zero-padded counter value: SHP000042.
type Number string

// NewNumber formats a value drawn from the shipment number sequence.
func NewNumber(seq int64) (Number, error) {
	if seq <= 0 {
		return "", errs.NewValueIsOutOfRangeError("shipment number sequence", seq, 1, "unbounded")
	}
	return Number(fmt.Sprintf("%s%06d", numberPrefix, seq)), nil
}

// ParseNumber validates a persisted number.
func ParseNumber(s string) (Number, error) {
	digits, ok := strings.CutPrefix(s, numberPrefix)
	if !ok || len(digits) < 6 {
		return "", errs.NewValueIsInvalidErrorWithCause("shipment number", fmt.Errorf("%q does not match %s######", s, numberPrefix))
	}
	if _, err := strconv.ParseUint(digits, 10, 64); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("shipment number", err)
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}
