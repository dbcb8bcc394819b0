package menu

import "fmt"

// Category classifies a menu item
type Category string

const (
	CategoryFood     Category = "food"
	CategoryBeverage Category = "beverage"
	CategoryPackage  Category = "package"
)

// Valid reports whether the category is one of the supported tags
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryBeverage, CategoryPackage:
		return true
	}
	return false
}

// Priceable is anything with a price and an ordered description, either a
// bare menu item or an item wrapped in customizations
type Priceable interface {
	Price() int64
	Describe() []string
}

// MenuItem is a catalog entry. Immutable once constructed; order lines
// reference it without owning it.
type MenuItem struct {
	ID          int
	Name        string
	Category    Category
	BasePrice   int64
	Description string
}

// Price returns the base unit price
func (m *MenuItem) Price() int64 {
	return m.BasePrice
}

// Describe returns the item name as the innermost description label
func (m *MenuItem) Describe() []string {
	return []string{m.Name}
}

func (m *MenuItem) String() string {
	return fmt.Sprintf("%s (%s) - Rp %d", m.Name, m.Category, m.BasePrice)
}
