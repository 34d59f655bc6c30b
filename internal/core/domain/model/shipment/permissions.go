package shipment

import "freightops/internal/core/domain/model/access"

// Capabilities allowed to create or edit shipments.
var (
	CreateCapabilities = []access.Capability{access.Ops, access.Admin}
	UpdateCapabilities = []access.Capability{access.Ops, access.Admin}
)

func getTransitionCapabilities() map[Status][]access.Capability {
	return map[Status][]access.Capability{
		Ready:     {access.Ops, access.Dispatcher, access.Admin},
		Assigned:  {access.Dispatcher, access.Admin},
		InTransit: {access.Driver, access.Dispatcher, access.Admin},
		Completed: {access.Driver, access.Dispatcher, access.Admin},
		Cancelled: {access.Ops, access.Dispatcher, access.Admin},
	}
}

// RequiredCapabilities lists the capabilities of which an actor needs at
// least one to move a shipment into target. Draft is never a target.
func RequiredCapabilities(target Status) []access.Capability {
	caps := getTransitionCapabilities()[target]
	out := make([]access.Capability, len(caps))
	copy(out, caps)
	return out
}
