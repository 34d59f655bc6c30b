// Package order holds the read model of customer orders. Shipments reference
// an order by ID and may only be created while it is Confirmed.
package order
