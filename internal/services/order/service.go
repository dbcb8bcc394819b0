package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warung-pos/internal/database"
	"warung-pos/internal/logger"
	"warung-pos/internal/menu"
	"warung-pos/internal/notify"
	"warung-pos/internal/order"
	"warung-pos/internal/pricing"
)

// Catalog resolves menu item references to catalog entries
type Catalog interface {
	GetMenuItem(ctx context.Context, id int) (*menu.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]*menu.MenuItem, error)
}

// CustomerDirectory resolves customer references to stored records
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id int) (*database.Customer, error)
}

// Sequencer allocates the daily order number sequence
type Sequencer interface {
	NextOrderSequence(ctx context.Context, date time.Time) (int, error)
}

// Service captures orders: it resolves catalog references, builds priced
// lines, aggregates them under the pricing engine and fans the finalized
// order out through the notification hub.
type Service struct {
	catalog    Catalog
	customers  CustomerDirectory
	sequencer  Sequencer
	aggregator *order.Aggregator
	hub        *notify.Hub
	logger     *logger.Logger
}

// NewService creates the order capture service
func NewService(catalog Catalog, customers CustomerDirectory, sequencer Sequencer,
	aggregator *order.Aggregator, hub *notify.Hub, log *logger.Logger) *Service {
	return &Service{
		catalog:    catalog,
		customers:  customers,
		sequencer:  sequencer,
		aggregator: aggregator,
		hub:        hub,
		logger:     log,
	}
}

// CreateOrder runs the full capture flow for one request
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest, requestID string) (*CreateOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.customers.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	lines, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	sequence, err := s.sequencer.NextOrderSequence(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	finalized, err := s.aggregator.Aggregate(lines,
		pricing.Context{
			Tier:        customer.Tier,
			VoucherCode: req.VoucherCode,
			Now:         now,
		},
		order.Ref{
			Number:      order.GenerateOrderNumber(now, sequence),
			CustomerID:  customer.ID,
			TableNumber: req.TableNumber,
		})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("order_finalized", "Order totals frozen", requestID, map[string]interface{}{
		"order_number": finalized.Number,
		"subtotal":     finalized.Subtotal,
		"discount":     finalized.Discount.Amount,
		"policy":       finalized.Discount.Policy,
		"total":        finalized.Total,
	})

	outcomes := s.hub.Publish(ctx, finalized)

	delivery := make(map[string]string, len(outcomes))
	failed := 0
	for id, outcome := range outcomes {
		if outcome.Succeeded() {
			delivery[id] = "ok"
		} else {
			delivery[id] = outcome.Err.Error()
			failed++
		}
	}

	s.logger.Info("order_published", "Order delivered to subscribers", requestID, map[string]interface{}{
		"order_number": finalized.Number,
		"subscribers":  len(outcomes),
		"failed":       failed,
	})

	return &CreateOrderResponse{
		OrderNumber: finalized.Number,
		Subtotal:    finalized.Subtotal,
		Discount:    finalized.Discount,
		Total:       finalized.Total,
		Delivery:    delivery,
	}, nil
}

// ListMenu returns the current catalog
func (s *Service) ListMenu(ctx context.Context) ([]*menu.MenuItem, error) {
	return s.catalog.ListMenuItems(ctx)
}

// buildLines resolves each requested item and stacks its customizations
func (s *Service) buildLines(ctx context.Context, items []OrderItemRequest) ([]*order.Line, error) {
	lines := make([]*order.Line, 0, len(items))

	for i, item := range items {
		menuItem, err := s.catalog.GetMenuItem(ctx, item.MenuItemID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, &menu.ValidationError{
					Field:  fmt.Sprintf("items[%d].menu_item_id", i),
					Reason: "unknown menu item",
				}
			}
			return nil, fmt.Errorf("failed to resolve menu item: %w", err)
		}

		customizations, err := buildCustomizations(item.Customizations, i)
		if err != nil {
			return nil, err
		}

		line, err := order.NewLine(menuItem, item.Quantity, customizations, item.Notes)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// buildCustomizations maps request customization specs to priced modifiers
func buildCustomizations(specs []CustomizationRequest, itemIndex int) ([]menu.Customization, error) {
	customizations := make([]menu.Customization, 0, len(specs))

	for j, spec := range specs {
		field := fmt.Sprintf("items[%d].customizations[%d]", itemIndex, j)

		switch spec.Kind {
		case menu.KindExtraCheese:
			customizations = append(customizations, menu.ExtraCheese())
		case menu.KindLargeSize:
			customizations = append(customizations, menu.LargeSize())
		case menu.KindExtraSpicy:
			customizations = append(customizations, menu.ExtraSpicy(spec.Level))
		case menu.KindExtraTopping:
			if spec.Name == "" {
				return nil, &menu.ValidationError{Field: field, Reason: "topping name is required"}
			}
			if spec.Price < 0 {
				return nil, &menu.ValidationError{Field: field, Reason: "topping price must be non-negative"}
			}
			customizations = append(customizations, menu.ExtraTopping(spec.Name, spec.Price))
		case menu.KindIceLevel:
			customizations = append(customizations, menu.IceLevel(spec.Name))
		case menu.KindSugarLevel:
			customizations = append(customizations, menu.SugarLevel(spec.Name))
		default:
			return nil, &menu.ValidationError{
				Field:  field,
				Reason: fmt.Sprintf("unknown customization kind: %s", spec.Kind),
			}
		}
	}

	return customizations, nil
}
