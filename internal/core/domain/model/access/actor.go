// Package access models who is calling: an Actor identified by the external
// identity provider and the set of capabilities granted to it.
package access

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"freightops/internal/pkg/errs"
	"freightops/internal/pkg/guard"
)

// Capability is a coarse role granted by the identity provider.
type Capability string

const (
	Ops        Capability = "OPS"
	Dispatcher Capability = "DISPATCHER"
	Driver     Capability = "DRIVER"
	Admin      Capability = "ADMIN"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ParseCapability accepts the upper or lower case capability name.
func ParseCapability(s string) (Capability, error) {
	c := Capability(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case Ops, Dispatcher, Driver, Admin:
		return c, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("capability", fmt.Errorf("%q is not a known capability", s))
	}
}

// Actor is the request context passed into every command: the identity of the
// caller and what it may do. Actors are values; copying one is safe.
type Actor struct {
	id           string
	capabilities []Capability
	guard        guard.ConstructorGuard
}

// NewActor requires a non-empty id. Duplicate capabilities are collapsed.
func NewActor(id string, capabilities ...Capability) (Actor, error) {
	if strings.TrimSpace(id) == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}

	caps := make([]Capability, 0, len(capabilities))
	for _, c := range capabilities {
		if !slices.Contains(caps, c) {
			caps = append(caps, c)
		}
	}

	return Actor{
		id:           id,
		capabilities: caps,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) ID() string {
	return a.id
}

func (a Actor) Capabilities() []Capability {
	return slices.Clone(a.capabilities)
}

// HasAny reports whether the actor holds at least one of required.
func (a Actor) HasAny(required ...Capability) bool {
	for _, c := range required {
		if slices.Contains(a.capabilities, c) {
			return true
		}
	}
	return false
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// CapabilityNames converts capabilities to their string names, in order.
func CapabilityNames(caps []Capability) []string {
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, string(c))
	}
	return names
}
