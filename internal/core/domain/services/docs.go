// Package services provides domain services that coordinate several aggregates
// of the freight domain.
//
// The package includes:
//   - DispatchAssigner: checks dispatch preconditions and applies the assignment
//     to the shipment, the vehicle and the new Dispatch record
//   - ResourceRegistry: availability lookups for vehicles and drivers
//   - CapabilityAuthorizer: the default capability check behind ports.Authorizer
package services
