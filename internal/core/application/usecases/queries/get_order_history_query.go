package queries

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrGetOrderHistoryQueryIsNotConstructed is returned when a
// GetOrderHistoryQuery was not created via NewGetOrderHistoryQuery.
var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves a restaurant's archived orders, most
// recently archived first, optionally narrowed by customer substring, total
// bounds and a closed-at window.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	filter       ports.HistoryFilter

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a history query.
// MinTotal must not exceed MaxTotal and From must not be after To when both
// bounds of a pair are given.
func NewGetOrderHistoryQuery(restaurantID kernel.UUID, filter ports.HistoryFilter) (GetOrderHistoryQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}

	if filter.MinTotal != nil && filter.MaxTotal != nil && *filter.MinTotal > *filter.MaxTotal {
		return GetOrderHistoryQuery{}, errs.NewValueIsOutOfRangeError(
			"minTotal", *filter.MinTotal, 0, *filter.MaxTotal)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return GetOrderHistoryQuery{}, errs.NewValueIsInvalidError("from is after to")
	}

	return GetOrderHistoryQuery{
		restaurantID: restaurantID,
		filter:       filter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// RestaurantID returns the calling restaurant's identifier.
func (q GetOrderHistoryQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Filter returns the history constraints.
func (q GetOrderHistoryQuery) Filter() ports.HistoryFilter {
	return q.filter
}
