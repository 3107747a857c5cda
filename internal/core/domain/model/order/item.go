package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line. Name and unit price are snapshots taken from the
// menu at ordering time, so later menu edits never change a placed order.
type Item struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int

	guard guard.ConstructorGuard
}

// NewItem creates an order line with a snapshot of the menu item's name and
// unit price. Quantity must be at least 1.
func NewItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// MenuItemID returns the id of the menu item this line was built from.
func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the menu item name snapshot.
func (i *Item) Name() string {
	return i.name
}

// UnitPrice returns the unit price snapshot.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns how many units were ordered.
func (i *Item) Quantity() int {
	return i.quantity
}

// Subtotal returns unit price times quantity.
func (i *Item) Subtotal() kernel.Money {
	return i.unitPrice.MultiplyQty(i.quantity)
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	i.quantity = quantity
	return nil
}
