package subscribers

import (
	"context"
	"fmt"

	"warung-pos/internal/database"
	"warung-pos/internal/order"
)

// OrderArchive persists finalized orders through the storage collaborator
type OrderArchive struct {
	repo *database.OrderRepository
}

// NewOrderArchive creates the order archive subscriber
func NewOrderArchive(repo *database.OrderRepository) *OrderArchive {
	return &OrderArchive{repo: repo}
}

// ID identifies this subscriber in publish outcomes
func (s *OrderArchive) ID() string {
	return "order-archive"
}

// Notify stores the order and its items
func (s *OrderArchive) Notify(ctx context.Context, o *order.FinalizedOrder) error {
	if err := s.repo.SaveFinalizedOrder(ctx, o); err != nil {
		return fmt.Errorf("failed to archive order %s: %w", o.Number, err)
	}
	return nil
}
