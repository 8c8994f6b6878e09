// Package order provides domain entities and business logic for order lifecycle
// management in the marketplace. It implements the Order aggregate root with a
// strictly forward-moving status state machine.
//
// The package includes:
//   - Order: The aggregate root covering lifecycle, driver binding, archival and rating
//   - Status: A state machine over AWAITING -> PREPARING -> READY -> EN_ROUTE -> CLOSED
//   - LineItem: An immutable snapshot of a menu position at order time
//   - Destination, DriverLocation: Geographic value objects
//   - Rating: A customer's one-time evaluation of a closed order
//
// Key business rules:
//   - Status never moves backward; advancing a Closed order is an idempotent no-op
//   - closedAt is stamped exactly once, when Closed is first reached
//   - Only the assigned driver may report a location, and only the latest one is kept
//   - Ratings require a Closed order and are accepted at most once
//   - archivedAt is immutable once set; orders are never hard-deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
