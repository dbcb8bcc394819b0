package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"warung-pos/internal/logger"
	"warung-pos/internal/order"
)

// Subscriber consumes finalized orders. Implementations are external
// collaborators: kitchen displays, cashier ledgers, audit sinks.
type Subscriber interface {
	ID() string
	Notify(ctx context.Context, o *order.FinalizedOrder) error
}

// Outcome is the per-subscriber result of one publish call
type Outcome struct {
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the delivery completed without error
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Hub owns the subscriber registry and fans finalized orders out to every
// registered subscriber. Registration is always explicit.
type Hub struct {
	mu      sync.Mutex
	subs    []Subscriber
	timeout time.Duration
	logger  *logger.Logger
}

// NewHub creates a hub with a bounded per-subscriber delivery timeout
func NewHub(timeout time.Duration, log *logger.Logger) *Hub {
	return &Hub{
		timeout: timeout,
		logger:  log,
	}
}

// Subscribe registers a subscriber. A subscriber with a duplicate ID
// replaces the existing registration.
func (h *Hub) Subscribe(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, existing := range h.subs {
		if existing.ID() == s.ID() {
			h.subs[i] = s
			return
		}
	}
	h.subs = append(h.subs, s)
}

// Unsubscribe removes a subscriber by ID. Removing an unknown ID is a no-op.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.subs {
		if s.ID() == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the IDs currently registered
func (h *Hub) Subscribers() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.subs))
	for _, s := range h.subs {
		ids = append(ids, s.ID())
	}
	return ids
}

// Publish delivers the finalized order to every subscriber registered at
// call time, exactly once each. Deliveries run concurrently under a bounded
// per-subscriber timeout; one subscriber's failure never blocks the others.
// Publish returns only after every delivery has been attempted. An empty
// registry is legal and yields an empty outcome map.
func (h *Hub) Publish(ctx context.Context, o *order.FinalizedOrder) map[string]Outcome {
	// Snapshot so subscribe/unsubscribe during an in-flight publish cannot
	// change who this call delivers to
	h.mu.Lock()
	snapshot := make([]Subscriber, len(h.subs))
	copy(snapshot, h.subs)
	h.mu.Unlock()

	outcomes := make(map[string]Outcome, len(snapshot))
	if len(snapshot) == 0 {
		return outcomes
	}

	var (
		wg sync.WaitGroup
		om sync.Mutex
	)

	for _, sub := range snapshot {
		wg.Add(1)
		go func(sub Subscriber) {
			defer wg.Done()

			outcome := h.deliver(ctx, sub, o)

			om.Lock()
			outcomes[sub.ID()] = outcome
			om.Unlock()
		}(sub)
	}

	wg.Wait()

	for id, outcome := range outcomes {
		if outcome.Err != nil {
			h.logger.Error("subscriber_delivery_failed",
				fmt.Sprintf("Delivery to %s failed", id),
				"", outcome.Err, map[string]interface{}{
					"subscriber":   id,
					"order_number": o.Number,
					"duration_ms":  outcome.Duration.Milliseconds(),
				})
		}
	}

	return outcomes
}

// deliver invokes a single subscriber under the hub's timeout and turns a
// panic or timeout into a captured failure outcome
func (h *Hub) deliver(ctx context.Context, sub Subscriber, o *order.FinalizedOrder) Outcome {
	deliveryCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("subscriber panicked: %v", r)
			}
		}()
		done <- sub.Notify(deliveryCtx, o)
	}()

	select {
	case err := <-done:
		return Outcome{Err: err, Duration: time.Since(start)}
	case <-deliveryCtx.Done():
		return Outcome{
			Err:      fmt.Errorf("delivery timed out after %v: %w", h.timeout, deliveryCtx.Err()),
			Duration: time.Since(start),
		}
	}
}
