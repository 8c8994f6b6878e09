// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read through the repository ports outside any transaction and
// map aggregates to the shared wire payloads, so HTTP responses and realtime
// events stay schema-identical.
package queries

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrGetActiveOrdersQueryIsNotConstructed is returned when a
// GetActiveOrdersQuery was not created via NewGetActiveOrdersQuery.
var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves a restaurant's non-archived orders for the
// live dashboard, newest first. Closed orders keep showing until they are
// archived, manually or by the deferred archive job.
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for a restaurant's active orders.
func NewGetActiveOrdersQuery(restaurantID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}

	return GetActiveOrdersQuery{
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// RestaurantID returns the calling restaurant's identifier.
func (q GetActiveOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}
