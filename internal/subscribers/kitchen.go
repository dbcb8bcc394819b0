package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"warung-pos/internal/order"
)

// priorityThreshold marks orders the kitchen should start first
const priorityThreshold = 100000

// KitchenTicket is the message pushed to the kitchen display channel
type KitchenTicket struct {
	OrderNumber string   `json:"order_number"`
	TableNumber int      `json:"table_number"`
	Priority    bool     `json:"priority"`
	Items       []string `json:"items"`
}

// KitchenDisplay pushes finalized orders to the kitchen display system
// over a Redis pub/sub channel
type KitchenDisplay struct {
	rdb     *redis.Client
	channel string
}

// NewKitchenDisplay creates the kitchen display subscriber
func NewKitchenDisplay(rdb *redis.Client, channel string) *KitchenDisplay {
	return &KitchenDisplay{rdb: rdb, channel: channel}
}

// ID identifies this subscriber in publish outcomes
func (k *KitchenDisplay) ID() string {
	return "kitchen-display"
}

// Notify publishes a kitchen ticket for the finalized order
func (k *KitchenDisplay) Notify(ctx context.Context, o *order.FinalizedOrder) error {
	ticket := KitchenTicket{
		OrderNumber: o.Number,
		TableNumber: o.TableNumber,
		Priority:    o.Total > priorityThreshold,
	}

	for _, line := range o.Lines {
		labels := line.Describe()
		item := labels[0]
		for _, label := range labels[1:] {
			item += " + " + label
		}
		ticket.Items = append(ticket.Items, fmt.Sprintf("%dx %s", line.Quantity, item))
	}

	body, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to marshal kitchen ticket: %w", err)
	}

	if err := k.rdb.Publish(ctx, k.channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish kitchen ticket: %w", err)
	}

	return nil
}
