// Package kernel provides the value objects shared by every aggregate of the
// freight operations domain.
//
// The package includes:
//   - UUID: identifier value object with validation and comparison
//   - TimeWindow: a planned [start, end] interval used by shipments and stops
//
// Both are immutable and safe for concurrent use. Their zero values are invalid,
// so an aggregate restored with a missing identifier or window fails validation
// instead of silently carrying empty data.
package kernel
