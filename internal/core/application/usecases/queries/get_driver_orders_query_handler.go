package queries

import (
	"context"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/ports"
)

// GetDriverOrdersQueryHandler serves the driver's delivery worklist.
type GetDriverOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetDriverOrdersQueryHandler creates a handler for driver worklist queries.
func NewGetDriverOrdersQueryHandler(orderRepo ports.OrderRepository) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle returns the driver's assigned Ready and EnRoute orders.
func (h GetDriverOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDriverOrdersQuery,
) ([]events.OrderPayload, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orderRepo.GetAssignedToDriver(ctx, query.DriverUserID())
	if err != nil {
		return nil, err
	}

	payloads := make([]events.OrderPayload, 0, len(orders))
	for _, o := range orders {
		payloads = append(payloads, events.OrderPayloadFromDomain(o))
	}
	return payloads, nil
}
