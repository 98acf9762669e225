package order

import (
	"errors"
	"fmt"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/errs"
	"mealmarket/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when attempting to use an
// improperly initialized LineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// LineItem is one ordered position of an order: a menu item reference, the
// quantity ordered, and the unit price captured at order time. The unit
// price is locked when the order is placed; later menu price changes never
// alter an existing order's total.
//
// LineItem is an immutable value object.
type LineItem struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	quantity   int
	unitPrice  int64

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item with a valid menu item reference, a
// positive quantity, and a non-negative unit price in whole currency units.
func NewLineItem(menuItemID kernel.UUID, quantity int, unitPrice int64) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate checks that the LineItem was created via NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// MenuItemID returns the referenced menu item's identifier.
func (li LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the unit price locked in at order time.
func (li LineItem) UnitPrice() int64 {
	return li.unitPrice
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() int64 {
	return li.unitPrice * int64(li.quantity)
}

func (li *LineItem) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}

	li.menuItemID = menuItemID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%d is negative", unitPrice))
	}

	li.unitPrice = unitPrice
	return nil
}
