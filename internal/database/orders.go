package database

import (
	"context"
	"fmt"
	"time"

	"warung-pos/internal/order"
)

// OrderRepository persists finalized orders in the order/order_items shape
type OrderRepository struct {
	db *DB
}

// NewOrderRepository creates an order repository
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// SaveFinalizedOrder writes the order row and its item rows in a single
// transaction. Either the whole order is stored or nothing is.
func (r *OrderRepository) SaveFinalizedOrder(ctx context.Context, o *order.FinalizedOrder) error {
	rec, items := o.Records()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, InsertOrderSQL,
		rec.ID, rec.Number, rec.CustomerID, rec.TableNumber, rec.TotalPrice, string(rec.Status))
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, InsertOrderItemSQL,
			item.OrderID, item.ItemID, item.Quantity, item.Price, item.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// NextOrderSequence allocates the next daily sequence number for order
// number generation. The upsert increments the per-day counter atomically,
// so two concurrent orders can never draw the same number.
func (r *OrderRepository) NextOrderSequence(ctx context.Context, date time.Time) (int, error) {
	var sequence int
	if err := r.db.QueryRow(ctx, NextOrderSequenceSQL, date.Format("2006-01-02")).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to allocate order sequence: %w", err)
	}

	return sequence, nil
}
