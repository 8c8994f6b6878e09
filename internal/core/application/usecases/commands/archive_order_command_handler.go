package commands

import (
	"context"
	"time"

	"foodcourt/internal/core/domain/model/order"
)

// ArchiveOrderCommandHandler handles explicit order archival.
//
// Archiving an already archived order is an idempotent success without a
// store write, which absorbs the race with the deferred auto-archive timer.
type ArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewArchiveOrderCommandHandler creates a handler for explicit archival.
func NewArchiveOrderCommandHandler(uowFactory OrderUoWFactory) ArchiveOrderCommandHandler {
	return ArchiveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the archival command and returns the resulting order.
func (h *ArchiveOrderCommandHandler) Handle(ctx context.Context, cmd ArchiveOrderCommand) (*order.Order, error) {
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

	if !aggregate.Archive(time.Now().UTC()) {
		return aggregate, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
