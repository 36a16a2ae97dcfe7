package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/forno-app/forno/internal/order"
)

// Notifier fans out order events to the configured webhook targets.
// Delivery happens in the background so request handling never waits on a
// slow receiver.
type Notifier struct {
	sender  *RetryingSender
	targets []Target
	timeout time.Duration
}

// NewNotifier creates a Notifier over the given targets. With no targets it
// is a no-op.
func NewNotifier(sender *RetryingSender, targets []Target, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Notifier{sender: sender, targets: targets, timeout: timeout}
}

type orderEvent struct {
	Event string      `json:"event"`
	Order order.Order `json:"order"`
}

// OrderCreated delivers an order.created event to all targets. It returns
// immediately; deliveries run with their own deadline, detached from the
// request context.
func (n *Notifier) OrderCreated(o order.Order) {
	n.dispatch("order.created", o)
}

// OrderUpdated delivers an order.updated event to all targets.
func (n *Notifier) OrderUpdated(o order.Order) {
	n.dispatch("order.updated", o)
}

func (n *Notifier) dispatch(event string, o order.Order) {
	if n == nil || len(n.targets) == 0 {
		return
	}

	payload, err := json.Marshal(orderEvent{Event: event, Order: o})
	if err != nil {
		log.Printf("notify: failed to encode %s for order %s: %v", event, o.ID, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		results := n.sender.SendAll(ctx, n.targets, payload)
		for i, result := range results {
			if result.Success {
				log.Printf("notify: %s delivered to %s in %v (retries=%d)",
					event, n.targets[i].Name, result.ResponseTime, result.Retries)
			} else {
				log.Printf("notify: %s delivery to %s failed: %s (retries=%d)",
					event, n.targets[i].Name, result.ErrorMessage, result.Retries)
			}
		}
	}()
}
