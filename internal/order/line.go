package order

import (
	"errors"
	"fmt"

	"warung-pos/internal/menu"
)

var (
	// ErrEmptyOrder is returned when aggregation is attempted with no lines
	ErrEmptyOrder = errors.New("order has no lines")

	// ErrInvalidQuantity is returned for a line quantity below one
	ErrInvalidQuantity = errors.New("line quantity must be at least 1")
)

// Line is one priced entry in an order: a menu item, a customization stack
// and a quantity. The unit price is fixed at construction time.
type Line struct {
	Item           *menu.MenuItem
	Quantity       int
	Customizations []menu.Customization
	Notes          string
	UnitPrice      int64
}

// NewLine builds a priced order line. The unit price is the item's base
// price plus every customization delta, computed through the decoration
// stack so the audit description matches the application order.
func NewLine(item *menu.MenuItem, quantity int, customizations []menu.Customization, notes string) (*Line, error) {
	if item == nil {
		return nil, errors.New("menu item is required")
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	priced := menu.Apply(item, customizations...)

	return &Line{
		Item:           item,
		Quantity:       quantity,
		Customizations: customizations,
		Notes:          notes,
		UnitPrice:      priced.Price(),
	}, nil
}

// Total is the line total: unit price times quantity
func (l *Line) Total() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Describe returns the display labels for the line, base item first,
// customizations in application order
func (l *Line) Describe() []string {
	return menu.Apply(l.Item, l.Customizations...).Describe()
}
