package commands

import (
	"context"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/pkg/errs"
)

// RateOrderCommandHandler handles customer ratings.
//
// The order must belong to the calling customer and be Closed; a second
// rating attempt fails. The restaurant's rating counters are incremented
// atomically in the same transaction as the order write, so concurrent
// ratings of different orders never lose counter updates.
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateOrderCommandHandler creates a handler for customer ratings.
func NewRateOrderCommandHandler(uowFactory UoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command and returns the resulting order.
func (h *RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
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
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Ownership check folded into not-found so foreign orders are not leaked.
	if !ownsOrder(aggregate, cmd.CustomerID()) {
		return nil, errs.NewObjectNotFoundError("orderId", cmd.OrderID())
	}

	if err = aggregate.Rate(cmd.Score(), cmd.Comment(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.RestaurantRepository().RegisterRating(ctx, aggregate.RestaurantID(), cmd.Score()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func ownsOrder(aggregate *order.Order, customerID kernel.UUID) bool {
	owner := aggregate.CustomerID()
	return owner != nil && owner.IsEqual(customerID)
}
