package queries

import (
	"context"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/ports"
)

// GetOrderHistoryQueryHandler serves the restaurant's closed-order history page.
type GetOrderHistoryQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
func NewGetOrderHistoryQueryHandler(orderRepo ports.OrderRepository) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{orderRepo: orderRepo}
}

// Handle returns the restaurant's filtered closed orders, newest first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]events.OrderPayload, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.GetHistoryForRestaurant(ctx, query.RestaurantID(), query.Filter())
	if err != nil {
		return nil, err
	}

	payloads := make([]events.OrderPayload, 0, len(orders))
	for _, o := range orders {
		payloads = append(payloads, events.OrderPayloadFromDomain(o))
	}
	return payloads, nil
}
