// Package events publishes kitchen domain events to a RabbitMQ topic exchange.
package events

import (
	"context"
	"log/slog"
	"time"
)

const Exchange = "kitchen_events"

// Routing keys.
const (
	UserApproved         = "user.approved"
	UserRejected         = "user.rejected"
	PaymentStatusChanged = "payment.status_changed"
	PaymentReminder      = "payment.reminder"
	PaymentConfirmed     = "payment.confirmed"
	DeliveryApproved     = "delivery.approved"
	DeliveryRejected     = "delivery.rejected"
	BroadcastActivated   = "broadcast.activated"
)

// Envelope is the JSON body of every message.
type Envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
	Close() error
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close() error                               { return nil }

const publishTimeout = 5 * time.Second

// Fire publishes synchronously on the caller's goroutine, waiting at most
// publishTimeout. Failures are logged and never reach the caller.
func Fire(p Publisher, routingKey string, data any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, routingKey, data); err != nil {
		slog.Error("event publish failed", "action", "events.publish", "routing_key", routingKey, "error", err)
	}
}
