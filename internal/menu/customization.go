package menu

// Customization is a single priced modifier applied on top of a menu item,
// such as extra cheese or a size upgrade. Delta may be zero for no-charge
// adjustments like ice or sugar level.
type Customization struct {
	Kind  string
	Label string
	Delta int64
}

// Common customization kinds carried over from the kitchen's price list.
const (
	KindExtraCheese  = "extra_cheese"
	KindExtraTopping = "extra_topping"
	KindLargeSize    = "large_size"
	KindExtraSpicy   = "extra_spicy"
	KindIceLevel     = "ice_level"
	KindSugarLevel   = "sugar_level"
)

// ExtraCheese adds a cheese layer at the standard surcharge
func ExtraCheese() Customization {
	return Customization{Kind: KindExtraCheese, Label: "Extra Cheese", Delta: 5000}
}

// ExtraTopping adds a named topping at its own price
func ExtraTopping(name string, price int64) Customization {
	return Customization{Kind: KindExtraTopping, Label: "Extra " + name, Delta: price}
}

// LargeSize upgrades the portion size
func LargeSize() Customization {
	return Customization{Kind: KindLargeSize, Label: "Large Size", Delta: 10000}
}

// ExtraSpicy raises the spice level; the surcharge scales with the level
func ExtraSpicy(level int) Customization {
	if level < 1 {
		level = 1
	}
	return Customization{Kind: KindExtraSpicy, Label: "Extra Spicy", Delta: 3000 * int64(level)}
}

// IceLevel records an ice preference for beverages, free of charge
func IceLevel(level string) Customization {
	return Customization{Kind: KindIceLevel, Label: level + " Ice", Delta: 0}
}

// SugarLevel records a sugar preference for beverages, free of charge
func SugarLevel(level string) Customization {
	return Customization{Kind: KindSugarLevel, Label: level + " Sugar", Delta: 0}
}

// customized wraps an inner priceable with one customization layer
type customized struct {
	inner Priceable
	c     Customization
}

// Price is the inner price plus this layer's delta
func (w *customized) Price() int64 {
	return w.inner.Price() + w.c.Delta
}

// Describe preserves application order: inner labels first, this layer last
func (w *customized) Describe() []string {
	return append(w.inner.Describe(), w.c.Label)
}

// Wrap layers a single customization over a priceable item. Wrapping is
// additive, so the total price does not depend on stacking order, but the
// described labels keep the order customizations were applied in.
func Wrap(base Priceable, c Customization) Priceable {
	return &customized{inner: base, c: c}
}

// Apply folds a whole customization stack over a base item. An empty stack
// returns the base unchanged.
func Apply(base Priceable, customizations ...Customization) Priceable {
	wrapped := base
	for _, c := range customizations {
		wrapped = Wrap(wrapped, c)
	}
	return wrapped
}
