package messaging

import (
	"time"

	"github.com/google/uuid"

	"warung-pos/internal/order"
)

// OrderFinalizedEvent is the immutable audit event emitted once an order's
// total is frozen and published
type OrderFinalizedEvent struct {
	EventID     string           `json:"event_id"`
	OccurredAt  time.Time        `json:"occurred_at"`
	OrderID     string           `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	CustomerID  int              `json:"customer_id"`
	TableNumber int              `json:"table_number"`
	Subtotal    int64            `json:"subtotal"`
	Discount    int64            `json:"discount"`
	Policy      string           `json:"policy"`
	Total       int64            `json:"total"`
	Lines       []OrderEventLine `json:"lines"`
}

// OrderEventLine is one audit line entry with its display labels in
// customization application order
type OrderEventLine struct {
	ItemID    int      `json:"item_id"`
	Labels    []string `json:"labels"`
	Quantity  int      `json:"quantity"`
	UnitPrice int64    `json:"unit_price"`
	Total     int64    `json:"total"`
}

// NewOrderFinalizedEvent builds the audit event from a finalized order
func NewOrderFinalizedEvent(o *order.FinalizedOrder) *OrderFinalizedEvent {
	lines := make([]OrderEventLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderEventLine{
			ItemID:    line.Item.ID,
			Labels:    line.Describe(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total(),
		})
	}

	return &OrderFinalizedEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		OrderID:     o.ID,
		OrderNumber: o.Number,
		CustomerID:  o.CustomerID,
		TableNumber: o.TableNumber,
		Subtotal:    o.Subtotal,
		Discount:    o.Discount.Amount,
		Policy:      o.Discount.Policy,
		Total:       o.Total,
		Lines:       lines,
	}
}
