// Package shipment contains the Shipment aggregate and everything it owns:
// stops, the status lifecycle and the status event audit trail.
//
// A shipment is created in Draft with a validated list of stops, is made Ready
// by operations, becomes Assigned when a dispatch puts a vehicle and a driver
// on it, and then moves to InTransit and Completed as the driver reports
// progress. It can be Cancelled from any non-terminal status.
//
// The lifecycle table lives in Status; the capability table lives in
// RequiredCapabilities. Both are consulted by the application layer before
// any change is persisted.
package shipment
