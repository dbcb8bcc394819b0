package subscribers

import (
	"context"
	"sync"

	"warung-pos/internal/order"
)

// CashierLedger keeps the cashier terminal's running shift totals.
// It is safe for concurrent notification.
type CashierLedger struct {
	mu sync.Mutex

	orders    int
	gross     int64
	discounts int64
	net       int64
	byPolicy  map[string]int64
}

// NewCashierLedger creates an empty shift ledger
func NewCashierLedger() *CashierLedger {
	return &CashierLedger{
		byPolicy: make(map[string]int64),
	}
}

// ID identifies this subscriber in publish outcomes
func (c *CashierLedger) ID() string {
	return "cashier-ledger"
}

// Notify records the finalized order in the shift totals
func (c *CashierLedger) Notify(_ context.Context, o *order.FinalizedOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.orders++
	c.gross += o.Subtotal
	c.discounts += o.Discount.Amount
	c.net += o.Total
	c.byPolicy[o.Discount.Policy] += o.Discount.Amount

	return nil
}

// ShiftSummary is a point-in-time copy of the ledger totals
type ShiftSummary struct {
	Orders    int
	Gross     int64
	Discounts int64
	Net       int64
	ByPolicy  map[string]int64
}

// Summary returns a copy of the current shift totals
func (c *CashierLedger) Summary() ShiftSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	byPolicy := make(map[string]int64, len(c.byPolicy))
	for policy, amount := range c.byPolicy {
		byPolicy[policy] = amount
	}

	return ShiftSummary{
		Orders:    c.orders,
		Gross:     c.gross,
		Discounts: c.discounts,
		Net:       c.net,
		ByPolicy:  byPolicy,
	}
}
