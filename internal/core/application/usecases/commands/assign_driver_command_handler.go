package commands

import (
	"context"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/domain/model/order"
)

// AssignDriverCommandHandler handles driver assignment.
//
// Assignment forces the order to EnRoute regardless of its current non-terminal
// status; a Closed order cannot be re-assigned. After commit the order:changed
// event is published best-effort.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  events.Publisher
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory, publisher events.Publisher) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command and returns the resulting order.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*order.Order, error) {
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

	if err = aggregate.AssignDriver(cmd.DriverName(), cmd.DriverUserID()); err != nil {
		return nil, err
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
