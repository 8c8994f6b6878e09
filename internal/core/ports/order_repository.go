package ports

import (
	"context"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
)

// HistoryFilter narrows a restaurant's closed-order history query.
// Zero values mean "no constraint" for the respective field.
type HistoryFilter struct {
	// Query is matched as a case-insensitive substring against the
	// snapshotted customer name and email.
	Query    string
	MinTotal *float64
	MaxTotal *float64
	From     *time.Time
	To       *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Update uses optimistic concurrency: the write succeeds only when the stored
// version still matches the aggregate's loaded version, and increments it.
// A lost race surfaces as errs.VersionIsInvalidError.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under
	// optimistic locking.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForRestaurant retrieves an order by id scoped to the owning
	// restaurant. A foreign or missing order is a not-found, so ownership
	// is never leaked.
	GetForRestaurant(ctx context.Context, id, restaurantID kernel.UUID) (*order.Order, error)

	// GetForDriver retrieves an order by id scoped to the assigned driver.
	GetForDriver(ctx context.Context, id, driverUserID kernel.UUID) (*order.Order, error)

	// GetActiveForRestaurant retrieves the restaurant's non-archived
	// orders, newest first. Closed orders remain active until archived.
	GetActiveForRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// GetHistoryForRestaurant retrieves the restaurant's archived orders,
	// most recently archived first, narrowed by the filter.
	GetHistoryForRestaurant(ctx context.Context, restaurantID kernel.UUID, filter HistoryFilter) ([]*order.Order, error)

	// GetReviewsForRestaurant retrieves the restaurant's rated orders,
	// newest rating first.
	GetReviewsForRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// GetAssignedToDriver retrieves the driver's orders in Ready or
	// EnRoute status.
	GetAssignedToDriver(ctx context.Context, driverUserID kernel.UUID) ([]*order.Order, error)

	// GetForCustomer retrieves the customer's orders, newest first.
	GetForCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetClosedUnarchived retrieves closed orders that have not been
	// archived yet. Used by the auto-archive job.
	GetClosedUnarchived(ctx context.Context) ([]*order.Order, error)
}
