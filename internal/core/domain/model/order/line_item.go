package order

import (
	"fmt"

	"foodcourt/internal/pkg/errs"
	"foodcourt/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via NewLineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of a single menu position at order time.
// Snapshotting name and unit price decouples the order from live menu state:
// a later menu price change never retroactively alters a past order.
type LineItem struct { //nolint:recvcheck //using for validation
	name      string
	quantity  int
	unitPrice float64

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item.
// Name must be non-empty, quantity positive and unit price non-negative.
func NewLineItem(name string, quantity int, unitPrice float64) (LineItem, error) {
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item name")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("line item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("line item unit price",
			fmt.Errorf("%g is negative", unitPrice))
	}

	return LineItem{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the line item was created through the constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// Name returns the snapshotted display name of the menu position.
func (li LineItem) Name() string {
	return li.name
}

// Quantity returns how many units were ordered.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the snapshotted price of a single unit.
func (li LineItem) UnitPrice() float64 {
	return li.unitPrice
}
