package ports

import (
	"context"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the persistence contract for restaurant aggregates.
//
// The counter methods issue single atomic SQL increments so concurrent order
// and rating writes never lose updates; they must run inside the same
// transaction as the order write that triggers them.
type RestaurantRepository interface {
	// Add persists a new restaurant aggregate to storage.
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error

	// Update persists changes to an existing restaurant aggregate.
	Update(ctx context.Context, aggregate *restaurant.Restaurant) error

	// Get retrieves a restaurant aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)

	// GetByOwner retrieves the restaurant owned by the given user account.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error)

	// IncrementOrdersCount atomically increments the restaurant's order counter.
	IncrementOrdersCount(ctx context.Context, id kernel.UUID) error

	// RegisterRating atomically increments the rating counter and adds the
	// score to the running sum.
	RegisterRating(ctx context.Context, id kernel.UUID, score int) error
}
