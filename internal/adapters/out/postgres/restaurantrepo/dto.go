// Package restaurantrepo provides data transfer objects and mapping functions
// for restaurant persistence, including the atomic counter updates that back
// order and rating statistics.
package restaurantrepo

import (
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for persisting restaurant
// aggregates. The counters are only ever written through atomic SQL
// increments, never via full-row updates.
type RestaurantDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name        string
	Description string

	OriginLng float64
	OriginLat float64

	FixedFee float64
	PerKmFee float64

	OrdersCount  int64
	RatingsCount int64
	RatingsSum   int64
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// fromDomain converts a restaurant domain aggregate to its database representation.
func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:           aggregate.ID().Bytes(),
		OwnerID:      aggregate.OwnerID().Bytes(),
		Name:         aggregate.Name(),
		Description:  aggregate.Description(),
		OriginLng:    aggregate.Origin().Lng(),
		OriginLat:    aggregate.Origin().Lat(),
		FixedFee:     aggregate.FixedFee(),
		PerKmFee:     aggregate.PerKmFee(),
		OrdersCount:  aggregate.OrdersCount(),
		RatingsCount: aggregate.RatingsCount(),
		RatingsSum:   aggregate.RatingsSum(),
	}
}

// toDomain converts a database DTO to a restaurant domain aggregate.
func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewGeoPoint(dto.OriginLng, dto.OriginLat)
	if err != nil {
		return nil, err
	}

	return restaurant.RestoreRestaurant(restaurant.RestoreRestaurantParams{
		ID:           id,
		OwnerID:      ownerID,
		Name:         dto.Name,
		Description:  dto.Description,
		Origin:       origin,
		FixedFee:     dto.FixedFee,
		PerKmFee:     dto.PerKmFee,
		OrdersCount:  dto.OrdersCount,
		RatingsCount: dto.RatingsCount,
		RatingsSum:   dto.RatingsSum,
	})
}
