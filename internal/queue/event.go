// Package queue carries guest notifications over RabbitMQ: the API publishes
// one message per reservation or contact submission and a background consumer
// appends each to logs/notifications.log.
package queue

import "context"

// NotificationsQueue is the durable queue shared by publisher and consumer.
const NotificationsQueue = "storefront.notifications"

// Notification kinds.
const (
	KindReservationCreated = "reservation.created"
	KindContactReceived    = "contact.received"
)

// Notification describes a guest submission. It carries enough context for
// the consumer to log or forward it without reading the store.
type Notification struct {
	Kind       string `json:"kind"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Summary    string `json:"summary"`
	OccurredAt string `json:"occurred_at"`
}

// Notifier publishes notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Nop discards every notification. It is used when RABBITMQ_URL is unset.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) error { return nil }
