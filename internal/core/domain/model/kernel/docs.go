// Package kernel provides shared value objects used across all domain aggregates.
//
// The package includes:
//   - UUID: A validated unique identifier wrapping github.com/google/uuid
//   - GeoPoint: An immutable WGS84 coordinate pair with bounds validation
//
// All value objects are immutable, validated at construction time, and their
// zero values fail validation. This ensures that any kernel value held by a
// domain aggregate is always in a valid state.
package kernel
