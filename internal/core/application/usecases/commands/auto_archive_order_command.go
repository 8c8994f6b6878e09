package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/guard"
)

// ErrAutoArchiveOrderCommandIsNotConstructed is returned when an
// AutoArchiveOrderCommand was not created via NewAutoArchiveOrderCommand.
var ErrAutoArchiveOrderCommandIsNotConstructed = errors.New(
	"AutoArchiveOrderCommand must be created via NewAutoArchiveOrderCommand constructor",
)

// AutoArchiveOrderCommand represents the system's deferred archival of a
// closed order. Unlike ArchiveOrderCommand it is not scoped to a restaurant;
// only the background job issues it.
type AutoArchiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoArchiveOrderCommand creates a command for deferred archival.
func NewAutoArchiveOrderCommand(orderID kernel.UUID) (AutoArchiveOrderCommand, error) {
	cmd := AutoArchiveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AutoArchiveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrAutoArchiveOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to archive.
func (c AutoArchiveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AutoArchiveOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
