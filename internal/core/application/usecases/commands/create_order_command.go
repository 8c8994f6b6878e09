package commands

import (
	"errors"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a CreateOrderCommand
// was not created via NewCreateOrderCommand.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemInput carries one menu position of an incoming order request.
type LineItemInput struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// DestinationInput carries the optional delivery target of an incoming order.
type DestinationInput struct {
	Lng   float64
	Lat   float64
	Label string
}

// CreateOrderCommand represents a customer's request to place a new order with
// a restaurant. The total is supplied by the client and trusted as
// authoritative; line items are snapshotted as given.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID

	customerID    kernel.UUID
	customerName  string
	customerEmail string

	lineItems   []LineItemInput
	total       float64
	destination *DestinationInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Requires valid order, restaurant and customer identifiers, at least one
// line item and a non-negative total. Item-level validation is delegated to
// the aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	restaurantID kernel.UUID,
	customerID kernel.UUID,
	customerName string,
	customerEmail string,
	lineItems []LineItemInput,
	total float64,
	destination *DestinationInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName:  customerName,
		customerEmail: customerEmail,
		total:         total,
		destination:   destination,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setCustomerID(customerID),
		cmd.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the identifier of the restaurant the order targets.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerName returns the customer display name to snapshot.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerEmail returns the customer email to snapshot.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// LineItems returns the requested line items.
func (c CreateOrderCommand) LineItems() []LineItemInput {
	return c.lineItems
}

// Total returns the client-computed order total.
func (c CreateOrderCommand) Total() float64 {
	return c.total
}

// Destination returns the optional delivery target.
func (c CreateOrderCommand) Destination() *DestinationInput {
	return c.destination
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurantId", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerId", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	c.lineItems = append([]LineItemInput(nil), items...)
	return nil
}
