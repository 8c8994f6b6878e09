package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrUpdateDriverLocationCommandIsNotConstructed is returned when an
// UpdateDriverLocationCommand was not created via NewUpdateDriverLocationCommand.
var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand represents a driver's position report for one
// of their assigned orders.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	driverUserID kernel.UUID
	point        kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a command to report a driver position.
// The driver identifier comes from the caller's session.
func NewUpdateDriverLocationCommand(
	orderID kernel.UUID,
	driverUserID kernel.UUID,
	point kernel.GeoPoint,
) (UpdateDriverLocationCommand, error) {
	cmd := UpdateDriverLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverUserID(driverUserID),
		cmd.setPoint(point),
	); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c UpdateDriverLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverUserID returns the reporting driver's identifier.
func (c UpdateDriverLocationCommand) DriverUserID() kernel.UUID {
	return c.driverUserID
}

// Point returns the reported coordinates.
func (c UpdateDriverLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c *UpdateDriverLocationCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *UpdateDriverLocationCommand) setDriverUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverUserId", err)
	}
	c.driverUserID = id
	return nil
}

func (c *UpdateDriverLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.point = point
	return nil
}
