package queries

import (
	"context"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/ports"
)

// GetCustomerOrdersQueryHandler serves the customer's order tracking page.
type GetCustomerOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order queries.
func NewGetCustomerOrdersQueryHandler(orderRepo ports.OrderRepository) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle returns the customer's orders, newest first.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]events.OrderPayload, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.GetForCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	payloads := make([]events.OrderPayload, 0, len(orders))
	for _, o := range orders {
		payloads = append(payloads, events.OrderPayloadFromDomain(o))
	}
	return payloads, nil
}
