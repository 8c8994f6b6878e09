package queries

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrGetFeeQuoteQueryIsNotConstructed is returned when a GetFeeQuoteQuery was
// not created via NewGetFeeQuoteQuery.
var ErrGetFeeQuoteQueryIsNotConstructed = errors.New(
	"GetFeeQuoteQuery must be created via NewGetFeeQuoteQuery constructor",
)

// GetFeeQuoteQuery estimates the delivery fee for an address before an order
// is placed.
type GetFeeQuoteQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	address      string

	guard guard.ConstructorGuard
}

// NewGetFeeQuoteQuery creates a fee quote query.
func NewGetFeeQuoteQuery(restaurantID kernel.UUID, address string) (GetFeeQuoteQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetFeeQuoteQuery{}, errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}
	if address == "" {
		return GetFeeQuoteQuery{}, errs.NewValueIsRequiredError("address")
	}

	return GetFeeQuoteQuery{
		restaurantID: restaurantID,
		address:      address,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFeeQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetFeeQuoteQueryIsNotConstructed)
}

// RestaurantID returns the target restaurant's identifier.
func (q GetFeeQuoteQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Address returns the free-form delivery address to quote for.
func (q GetFeeQuoteQuery) Address() string {
	return q.address
}

// GetFeeQuoteQueryResponse is the fee estimate returned to the client.
// Degraded marks a quote computed without the routing collaborator; the fee
// then covers the fixed component only and the destination is unresolved.
type GetFeeQuoteQueryResponse struct {
	Fee        float64  `json:"fee"`
	DistanceKm float64  `json:"distanceKm"`
	Degraded   bool     `json:"degraded"`
	Lng        *float64 `json:"lng,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
}
