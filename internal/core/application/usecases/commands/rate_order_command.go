package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrRateOrderCommandIsNotConstructed is returned when a RateOrderCommand was
// not created via NewRateOrderCommand.
var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents a customer's one-time rating of a closed order.
// Score bounds and comment length are validated by the aggregate.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	score      int
	comment    string

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to rate an order.
// The customer identifier comes from the caller's session and scopes the
// order lookup.
func NewRateOrderCommand(orderID, customerID kernel.UUID, score int, comment string) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		score:   score,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to rate.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the calling customer's identifier.
func (c RateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Score returns the requested rating score.
func (c RateOrderCommand) Score() int {
	return c.score
}

// Comment returns the optional free-text comment.
func (c RateOrderCommand) Comment() string {
	return c.comment
}

func (c *RateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerId", err)
	}
	c.customerID = id
	return nil
}
