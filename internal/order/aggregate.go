package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"warung-pos/internal/pricing"
)

// Ref identifies who and where an order is for
type Ref struct {
	Number      string
	CustomerID  int
	TableNumber int
}

// FinalizedOrder is the frozen result of aggregation: priced lines, the
// applied discount and the final total. Immutable once published.
type FinalizedOrder struct {
	ID          string
	Number      string
	CustomerID  int
	TableNumber int
	Lines       []*Line
	Subtotal    int64
	Discount    pricing.Result
	Total       int64
	CreatedAt   time.Time
}

// Aggregator totals order lines and applies one pricing policy
type Aggregator struct {
	engine *pricing.Engine
}

// NewAggregator creates an aggregator over the given pricing engine
func NewAggregator(engine *pricing.Engine) *Aggregator {
	return &Aggregator{engine: engine}
}

// Aggregate sums the lines into a subtotal, runs the policy precedence
// against the pricing facts and assembles the finalized order.
// Fails with ErrEmptyOrder for zero lines and ErrInvalidQuantity if any
// line slipped through with a quantity below one.
func (a *Aggregator) Aggregate(lines []*Line, facts pricing.Context, ref Ref) (*FinalizedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	var subtotal int64
	for i, line := range lines {
		// Line construction already rejects this; re-check so a hand-built
		// line cannot produce a negative total
		if line.Quantity < 1 {
			return nil, fmt.Errorf("line %d: %w", i, ErrInvalidQuantity)
		}
		subtotal += line.Total()
	}

	facts.Subtotal = subtotal
	discount := a.engine.Evaluate(facts)

	return &FinalizedOrder{
		ID:          uuid.NewString(),
		Number:      ref.Number,
		CustomerID:  ref.CustomerID,
		TableNumber: ref.TableNumber,
		Lines:       lines,
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       subtotal - discount.Amount,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// AggregateWith behaves like Aggregate but forces a single policy instead
// of running the precedence order
func (a *Aggregator) AggregateWith(policy pricing.Policy, lines []*Line, facts pricing.Context, ref Ref) (*FinalizedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	var subtotal int64
	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("line %d: %w", i, ErrInvalidQuantity)
		}
		subtotal += line.Total()
	}

	facts.Subtotal = subtotal
	discount := a.engine.EvaluateWith(policy, facts)

	return &FinalizedOrder{
		ID:          uuid.NewString(),
		Number:      ref.Number,
		CustomerID:  ref.CustomerID,
		TableNumber: ref.TableNumber,
		Lines:       lines,
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       subtotal - discount.Amount,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// GenerateOrderNumber formats an order number as ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("ORD_%s_%03d", date.Format("20060102"), sequence)
}
