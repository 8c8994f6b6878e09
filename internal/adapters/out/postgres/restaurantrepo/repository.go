package restaurantrepo

import (
	"context"
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/restaurant"
	"foodcourt/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRestaurantRepository creates a new GORM restaurant repository.
func NewGormRestaurantRepository(db *gorm.DB, tracker aggregateTracker) *GormRestaurantRepository {
	return &GormRestaurantRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new restaurant to the database.
func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *restaurant.Restaurant) error {
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

// Update saves an existing restaurant to the database.
// The counters are excluded: they are only written through the atomic
// increment methods so concurrent orders never lose counts.
func (r *GormRestaurantRepository) Update(ctx context.Context, aggregate *restaurant.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RestaurantDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "orders_count", "ratings_count", "ratings_sum").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurant", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a restaurant by ID.
func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOwner retrieves the restaurant owned by the given user account.
func (r *GormRestaurantRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error) {
	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant owner", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// IncrementOrdersCount atomically increments the restaurant's order counter.
func (r *GormRestaurantRepository) IncrementOrdersCount(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&RestaurantDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("orders_count", gorm.Expr("orders_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurant", id.String())
	}
	return nil
}

// RegisterRating atomically increments the rating counter and adds the score
// to the running sum in a single statement.
func (r *GormRestaurantRepository) RegisterRating(ctx context.Context, id kernel.UUID, score int) error {
	result := r.db.WithContext(ctx).Model(&RestaurantDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumns(map[string]any{
			"ratings_count": gorm.Expr("ratings_count + ?", 1),
			"ratings_sum":   gorm.Expr("ratings_sum + ?", score),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurant", id.String())
	}
	return nil
}
