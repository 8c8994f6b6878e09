package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order under optimistic locking.
//
// The write is guarded by the version loaded with the aggregate; the row is
// only touched when the stored version still matches, and the version is
// bumped in the same statement. Select("*") forces nullable columns back to
// NULL when the aggregate cleared them.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order",
			fmt.Errorf("order %s was modified concurrently", aggregate.ID()))
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.getOne(ctx, id, "id = ?", id.Bytes())
}

// GetForRestaurant retrieves an order by ID scoped to the owning restaurant.
func (r *GormOrderRepository) GetForRestaurant(ctx context.Context, id, restaurantID kernel.UUID) (*order.Order, error) {
	return r.getOne(ctx, id, "id = ? AND restaurant_id = ?", id.Bytes(), restaurantID.Bytes())
}

// GetForDriver retrieves an order by ID scoped to the assigned driver.
func (r *GormOrderRepository) GetForDriver(ctx context.Context, id, driverUserID kernel.UUID) (*order.Order, error) {
	return r.getOne(ctx, id, "id = ? AND driver_user_id = ?", id.Bytes(), driverUserID.Bytes())
}

// GetActiveForRestaurant retrieves the restaurant's non-archived orders,
// newest first. Closed orders stay on the active list until archival moves
// them to history.
func (r *GormOrderRepository) GetActiveForRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]*order.Order, error) {
	return r.getMany(ctx, r.db.WithContext(ctx).
		Where("restaurant_id = ? AND archived_at IS NULL", restaurantID.Bytes()).
		Order("created_at DESC"))
}

// GetHistoryForRestaurant retrieves the restaurant's archived orders, most
// recently archived first, narrowed by the filter.
func (r *GormOrderRepository) GetHistoryForRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
	filter ports.HistoryFilter,
) ([]*order.Order, error) {
	tx := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND archived_at IS NOT NULL", restaurantID.Bytes())

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("(LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?)", pattern, pattern)
	}
	if filter.MinTotal != nil {
		tx = tx.Where("total >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		tx = tx.Where("total <= ?", *filter.MaxTotal)
	}
	if filter.From != nil {
		tx = tx.Where("closed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("closed_at <= ?", *filter.To)
	}

	return r.getMany(ctx, tx.Order("archived_at DESC"))
}

// GetReviewsForRestaurant retrieves the restaurant's rated orders, newest
// rating first.
func (r *GormOrderRepository) GetReviewsForRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]*order.Order, error) {
	return r.getMany(ctx, r.db.WithContext(ctx).
		Where("restaurant_id = ? AND rated_at IS NOT NULL", restaurantID.Bytes()).
		Order("rated_at DESC"))
}

// GetAssignedToDriver retrieves the driver's orders in Ready or EnRoute status.
func (r *GormOrderRepository) GetAssignedToDriver(
	ctx context.Context,
	driverUserID kernel.UUID,
) ([]*order.Order, error) {
	return r.getMany(ctx, r.db.WithContext(ctx).
		Where("driver_user_id = ? AND status IN ?",
			driverUserID.Bytes(), []int{int(order.Ready), int(order.EnRoute)}).
		Order("created_at ASC"))
}

// GetForCustomer retrieves the customer's orders, newest first.
func (r *GormOrderRepository) GetForCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) ([]*order.Order, error) {
	return r.getMany(ctx, r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("created_at DESC"))
}

// GetClosedUnarchived retrieves closed orders awaiting archival, oldest
// closure first.
func (r *GormOrderRepository) GetClosedUnarchived(ctx context.Context) ([]*order.Order, error) {
	return r.getMany(ctx, r.db.WithContext(ctx).
		Where("status = ? AND archived_at IS NULL", int(order.Closed)).
		Order("closed_at ASC"))
}

func (r *GormOrderRepository) getOne(
	ctx context.Context,
	id kernel.UUID,
	cond string,
	args ...any,
) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, append([]any{cond}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) getMany(_ context.Context, tx *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
