package order

import (
	"fmt"

	"warung-pos/internal/menu"
	"warung-pos/internal/pricing"
)

// CreateOrderRequest is the HTTP payload for capturing an order
type CreateOrderRequest struct {
	CustomerID  int                `json:"customer_id"`
	TableNumber int                `json:"table_number"`
	VoucherCode string             `json:"voucher_code,omitempty"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one requested line: a catalog reference, quantity
// and customization stack
type OrderItemRequest struct {
	MenuItemID     int                    `json:"menu_item_id"`
	Quantity       int                    `json:"quantity"`
	Notes          string                 `json:"notes,omitempty"`
	Customizations []CustomizationRequest `json:"customizations,omitempty"`
}

// CustomizationRequest selects a customization by kind. Name carries the
// topping or level name where the kind needs one; Price and Level apply to
// extra-topping and extra-spicy respectively.
type CustomizationRequest struct {
	Kind  string `json:"kind"`
	Name  string `json:"name,omitempty"`
	Price int64  `json:"price,omitempty"`
	Level int    `json:"level,omitempty"`
}

// CreateOrderResponse reports the frozen totals and per-subscriber
// delivery outcomes
type CreateOrderResponse struct {
	OrderNumber string            `json:"order_number"`
	Subtotal    int64             `json:"subtotal"`
	Discount    pricing.Result    `json:"discount"`
	Total       int64             `json:"total"`
	Delivery    map[string]string `json:"delivery"`
}

// Validate checks the request shape before any catalog lookups.
// Line-level quantity rules are enforced again by the order package.
func (req *CreateOrderRequest) Validate() error {
	if req.CustomerID < 1 {
		return &menu.ValidationError{Field: "customer_id", Reason: "customer_id is required"}
	}

	if req.TableNumber < 0 {
		return &menu.ValidationError{Field: "table_number", Reason: "table_number must be non-negative"}
	}

	if len(req.Items) == 0 {
		return &menu.ValidationError{Field: "items", Reason: "items cannot be empty"}
	}

	for i, item := range req.Items {
		if item.MenuItemID < 1 {
			return &menu.ValidationError{Field: itemField(i, "menu_item_id"), Reason: "menu_item_id is required"}
		}
		if item.Quantity < 1 {
			return &menu.ValidationError{Field: itemField(i, "quantity"), Reason: "quantity must be at least 1"}
		}
	}

	return nil
}

func itemField(index int, name string) string {
	return fmt.Sprintf("items[%d].%s", index, name)
}
