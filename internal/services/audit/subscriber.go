package audit

import (
	"context"
	"fmt"
	"strings"

	"warung-pos/internal/logger"
	"warung-pos/internal/messaging"
)

// Subscriber consumes order-finalized events from the audit queue and
// renders them for the audit trail
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new audit subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes the audit queue until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	s.logger.Info("service_started", "Audit subscriber started", requestID, nil)

	return s.consumer.StartConsuming(ctx, s.handleEvent)
}

// handleEvent processes one order-finalized event
func (s *Subscriber) handleEvent(_ context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var event messaging.OrderFinalizedEvent
	if err := messaging.ParseMessage(body, &event); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse audit event", requestID, err, nil)
		return fmt.Errorf("failed to parse audit event: %w", err)
	}

	// Print to console (stdout)
	fmt.Println(formatAuditLine(&event))

	s.logger.Info("audit_recorded", "Order finalization recorded", requestID, map[string]interface{}{
		"event_id":     event.EventID,
		"order_number": event.OrderNumber,
		"subtotal":     event.Subtotal,
		"discount":     event.Discount,
		"policy":       event.Policy,
		"total":        event.Total,
	})

	return nil
}

// formatAuditLine creates a human-readable audit entry
func formatAuditLine(event *messaging.OrderFinalizedEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] ORDER %s finalized: subtotal Rp %d",
		event.OccurredAt.Format("2006-01-02 15:04:05"),
		event.OrderNumber,
		event.Subtotal,
	)

	if event.Discount > 0 {
		fmt.Fprintf(&b, ", discount Rp %d (%s)", event.Discount, event.Policy)
	}

	fmt.Fprintf(&b, ", total Rp %d", event.Total)

	for _, line := range event.Lines {
		fmt.Fprintf(&b, "\n  %dx %s - Rp %d", line.Quantity, strings.Join(line.Labels, " + "), line.Total)
	}

	return b.String()
}

// Close stops the underlying consumer
func (s *Subscriber) Close() error {
	return s.consumer.Close()
}
