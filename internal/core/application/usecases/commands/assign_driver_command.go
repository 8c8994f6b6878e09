package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrAssignDriverCommandIsNotConstructed is returned when an
// AssignDriverCommand was not created via NewAssignDriverCommand.
var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a restaurant's request to bind a driver to
// one of its orders. Either or both of the driver fields may be set; the
// aggregate keeps unset fields unchanged on re-assignment.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID

	driverName   *string
	driverUserID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver.
func NewAssignDriverCommand(
	orderID kernel.UUID,
	restaurantID kernel.UUID,
	driverName *string,
	driverUserID *kernel.UUID,
) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setDriver(driverName, driverUserID),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the calling restaurant's identifier.
func (c AssignDriverCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// DriverName returns the driver display name to set, or nil.
func (c AssignDriverCommand) DriverName() *string {
	return c.driverName
}

// DriverUserID returns the driver user identifier to set, or nil.
func (c AssignDriverCommand) DriverUserID() *kernel.UUID {
	return c.driverUserID
}

func (c *AssignDriverCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AssignDriverCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}
	c.restaurantID = id
	return nil
}

func (c *AssignDriverCommand) setDriver(name *string, userID *kernel.UUID) error {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("driverUserId", err)
		}
		id := *userID
		c.driverUserID = &id
	}
	if name != nil {
		driverName := *name
		c.driverName = &driverName
	}
	return nil
}
