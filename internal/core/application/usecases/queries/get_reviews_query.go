package queries

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrGetReviewsQueryIsNotConstructed is returned when a GetReviewsQuery was
// not created via NewGetReviewsQuery.
var ErrGetReviewsQueryIsNotConstructed = errors.New(
	"GetReviewsQuery must be created via NewGetReviewsQuery constructor",
)

// GetReviewsQuery retrieves a restaurant's rated orders, newest rating first.
type GetReviewsQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetReviewsQuery creates a query for a restaurant's reviews.
func NewGetReviewsQuery(restaurantID kernel.UUID) (GetReviewsQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetReviewsQuery{}, errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}

	return GetReviewsQuery{
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReviewsQuery) Validate() error {
	return q.guard.Validate(ErrGetReviewsQueryIsNotConstructed)
}

// RestaurantID returns the calling restaurant's identifier.
func (q GetReviewsQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}
