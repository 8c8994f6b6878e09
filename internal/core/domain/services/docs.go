// Package services provides domain services that implement business logic not
// naturally belonging to a single aggregate root.
//
// The package includes:
//   - FeeCalculator: computes delivery fees from a restaurant's fee schedule
//     and a driving distance
package services
