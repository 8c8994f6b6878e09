package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrArchiveOrderCommandIsNotConstructed is returned when an
// ArchiveOrderCommand was not created via NewArchiveOrderCommand.
var ErrArchiveOrderCommandIsNotConstructed = errors.New(
	"ArchiveOrderCommand must be created via NewArchiveOrderCommand constructor",
)

// ArchiveOrderCommand represents a restaurant's explicit request to move one
// of its orders into history, ahead of the deferred auto-archive timer.
type ArchiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewArchiveOrderCommand creates a command to archive an order.
func NewArchiveOrderCommand(orderID, restaurantID kernel.UUID) (ArchiveOrderCommand, error) {
	cmd := ArchiveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
	); err != nil {
		return ArchiveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to archive.
func (c ArchiveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the calling restaurant's identifier.
func (c ArchiveOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c *ArchiveOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ArchiveOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}
	c.restaurantID = id
	return nil
}
