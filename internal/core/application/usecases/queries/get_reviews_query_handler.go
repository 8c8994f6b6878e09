package queries

import (
	"context"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/ports"
)

// GetReviewsQueryHandler serves the restaurant's review listing.
type GetReviewsQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetReviewsQueryHandler creates a handler for review queries.
func NewGetReviewsQueryHandler(orderRepo ports.OrderRepository) GetReviewsQueryHandler {
	return GetReviewsQueryHandler{orderRepo: orderRepo}
}

// Handle returns the restaurant's rated orders, newest rating first.
func (h GetReviewsQueryHandler) Handle(
	ctx context.Context,
	query GetReviewsQuery,
) ([]events.OrderPayload, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.GetReviewsForRestaurant(ctx, query.RestaurantID())
	if err != nil {
		return nil, err
	}

	payloads := make([]events.OrderPayload, 0, len(orders))
	for _, o := range orders {
		payloads = append(payloads, events.OrderPayloadFromDomain(o))
	}
	return payloads, nil
}
