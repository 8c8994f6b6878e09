package queries

import (
	"context"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/ports"
)

// GetActiveOrdersQueryHandler serves the restaurant's live order dashboard.
type GetActiveOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(orderRepo ports.OrderRepository) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle returns the restaurant's active orders as wire payloads, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]events.OrderPayload, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.GetActiveForRestaurant(ctx, query.RestaurantID())
	if err != nil {
		return nil, err
	}

	payloads := make([]events.OrderPayload, 0, len(orders))
	for _, o := range orders {
		payloads = append(payloads, events.OrderPayloadFromDomain(o))
	}
	return payloads, nil
}
