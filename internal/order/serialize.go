package order

import "strings"

// Status is the persisted order lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusCooking   Status = "cooking"
	StatusServed    Status = "served"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// OrderRecord is the persisted order row shape owned by the storage layer
type OrderRecord struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	CustomerID  int    `json:"customer_id"`
	TableNumber int    `json:"table_number"`
	TotalPrice  int64  `json:"total_price"`
	Status      Status `json:"status"`
}

// OrderItemRecord is the persisted order item row shape
type OrderItemRecord struct {
	OrderID  string `json:"order_id"`
	ItemID   int    `json:"item_id"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Notes    string `json:"notes"`
}

// Records serializes a finalized order into the order/order_items shape the
// storage collaborator persists. New orders always start out pending.
func (o *FinalizedOrder) Records() (OrderRecord, []OrderItemRecord) {
	rec := OrderRecord{
		ID:          o.ID,
		Number:      o.Number,
		CustomerID:  o.CustomerID,
		TableNumber: o.TableNumber,
		TotalPrice:  o.Total,
		Status:      StatusPending,
	}

	items := make([]OrderItemRecord, 0, len(o.Lines))
	for _, line := range o.Lines {
		notes := line.Notes
		// Customization labels ride along in the notes column so the
		// persisted row keeps the audit trail of what was stacked
		if labels := line.Describe(); len(labels) > 1 {
			detail := strings.Join(labels[1:], ", ")
			if notes != "" {
				notes = detail + "; " + notes
			} else {
				notes = detail
			}
		}

		items = append(items, OrderItemRecord{
			OrderID:  o.ID,
			ItemID:   line.Item.ID,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
			Notes:    notes,
		})
	}

	return rec, items
}
