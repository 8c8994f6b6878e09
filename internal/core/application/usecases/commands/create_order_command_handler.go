package commands

import (
	"context"
	"time"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order placement.
//
// Creates the order in Awaiting status and increments the restaurant's order
// counter in the same transaction. After commit the order:new event is fanned
// out to connected viewers; publication is best-effort and never fails the
// command.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  events.Publisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence and a Publisher for
// post-commit notifications.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher events.Publisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command and returns the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lineItems := make([]order.LineItem, 0, len(cmd.LineItems()))
	for _, input := range cmd.LineItems() {
		item, err := order.NewLineItem(input.Name, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, item)
	}

	var destination *order.Destination
	if input := cmd.Destination(); input != nil {
		point, err := kernel.NewGeoPoint(input.Lng, input.Lat)
		if err != nil {
			return nil, err
		}
		dest, err := order.NewDestination(point, input.Label)
		if err != nil {
			return nil, err
		}
		destination = &dest
	}

	customerID := cmd.CustomerID()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.RestaurantID(),
		&customerID,
		cmd.CustomerName(),
		cmd.CustomerEmail(),
		lineItems,
		cmd.Total(),
		destination,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Existence check: placing an order with an unknown restaurant is a
	// not-found, not a dangling foreign key.
	if _, err = uow.RestaurantRepository().Get(ctx, cmd.RestaurantID()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.RestaurantRepository().IncrementOrdersCount(ctx, cmd.RestaurantID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(events.NewOrderNew(newOrder))
	return newOrder, nil
}
