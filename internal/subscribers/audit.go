package subscribers

import (
	"context"
	"fmt"

	"warung-pos/internal/messaging"
	"warung-pos/internal/order"
)

// AuditTrail forwards finalized orders to the audit event stream on
// RabbitMQ, where the audit subscriber service consumes them
type AuditTrail struct {
	publisher *messaging.Publisher
}

// NewAuditTrail creates the audit trail subscriber
func NewAuditTrail(publisher *messaging.Publisher) *AuditTrail {
	return &AuditTrail{publisher: publisher}
}

// ID identifies this subscriber in publish outcomes
func (a *AuditTrail) ID() string {
	return "audit-trail"
}

// Notify emits the order-finalized event
func (a *AuditTrail) Notify(ctx context.Context, o *order.FinalizedOrder) error {
	if err := a.publisher.PublishOrderFinalized(ctx, o); err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}
	return nil
}
