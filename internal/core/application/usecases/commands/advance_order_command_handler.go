package commands

import (
	"context"
	"time"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/domain/model/order"
)

// AdvanceOrderCommandHandler handles single-step lifecycle transitions.
//
// The order lookup is scoped to the calling restaurant, so a foreign order is
// indistinguishable from a missing one. Advancing a Closed order is a no-op
// that skips the store write entirely. After commit the order:changed event
// is published best-effort.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  events.Publisher
}

// NewAdvanceOrderCommandHandler creates a handler for order advancement.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory, publisher events.Publisher) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the advancement command and returns the resulting order.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForRestaurant(ctx, cmd.OrderID(), cmd.RestaurantID())
	if err != nil {
		return nil, err
	}

	changed, err := aggregate.Advance(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if !changed {
		// Already Closed: idempotent success without a write.
		return aggregate, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.NewOrderChanged(aggregate))
	return aggregate, nil
}
