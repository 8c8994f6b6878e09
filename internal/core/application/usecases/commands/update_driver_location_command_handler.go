package commands

import (
	"context"
	"time"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/domain/model/order"
)

// UpdateDriverLocationCommandHandler handles driver position reports.
//
// The order lookup is scoped to the reporting driver, so an order assigned to
// someone else is indistinguishable from a missing one. After commit the
// driver:loc event is published best-effort.
type UpdateDriverLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  events.Publisher
}

// NewUpdateDriverLocationCommandHandler creates a handler for position reports.
func NewUpdateDriverLocationCommandHandler(
	uowFactory OrderUoWFactory,
	publisher events.Publisher,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the position report and returns the resulting order.
func (h *UpdateDriverLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDriverLocationCommand,
) (*order.Order, error) {
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
	aggregate, err := orderRepo.GetForDriver(ctx, cmd.OrderID(), cmd.DriverUserID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.UpdateDriverLocation(cmd.DriverUserID(), cmd.Point(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.NewDriverLoc(aggregate))
	return aggregate, nil
}
