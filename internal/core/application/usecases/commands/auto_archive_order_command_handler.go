package commands

import (
	"context"
	"time"

	"foodcourt/internal/core/domain/model/order"
)

// AutoArchiveOrderCommandHandler performs the deferred archival of closed
// orders on behalf of the background job.
//
// Idempotent against the explicit archive action: an order archived in the
// meantime is a silent success, and a lost optimistic-locking race simply
// leaves the order for the next discovery scan.
type AutoArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAutoArchiveOrderCommandHandler creates a handler for deferred archival.
func NewAutoArchiveOrderCommandHandler(uowFactory OrderUoWFactory) AutoArchiveOrderCommandHandler {
	return AutoArchiveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle archives the order if it has not been archived already.
func (h *AutoArchiveOrderCommandHandler) Handle(ctx context.Context, cmd AutoArchiveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// Only closed orders are auto-archived; anything else means the scan
	// raced a newer state and the order is left alone.
	if aggregate.Status() != order.Closed {
		return nil
	}

	if !aggregate.Archive(time.Now().UTC()) {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
