package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Dial bounds for the publisher. A dial without a context deadline gets
// defaultDialTimeout; after a failed dial the publisher fails fast for
// redialBackoff instead of dialling on every request.
const (
	defaultDialTimeout = 5 * time.Second
	redialBackoff      = 5 * time.Second
)

// Publisher sends notifications to NotificationsQueue. The connection is
// dialled lazily and re-dialled after the broker drops it, so a broker that
// starts after the API is picked up on the next publish.
type Publisher struct {
	url    string
	logger *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

func NewPublisher(url string, logger *slog.Logger) *Publisher {
	return &Publisher{url: url, logger: logger}
}

// Notify publishes n as a persistent JSON message on the default exchange.
// Dialling and the AMQP handshake are bounded by ctx.
func (p *Publisher) Notify(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx,
		"",                 // default exchange
		NotificationsQueue, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         n.Kind,
			Body:         body,
		})
	if err != nil {
		p.mu.Lock()
		if p.ch == ch {
			p.reset()
		}
		p.mu.Unlock()
		return fmt.Errorf("publish %s: %w", n.Kind, err)
	}
	return nil
}

// channel returns the open channel or dials a new one. p.mu is never held
// while dialling.
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	p.mu.Lock()
	if p.ready() {
		ch := p.ch
		p.mu.Unlock()
		return ch, nil
	}
	if wait := time.Until(p.retryAt); wait > 0 {
		p.mu.Unlock()
		return nil, fmt.Errorf("broker unavailable, next dial in %s", wait.Round(time.Millisecond))
	}
	p.mu.Unlock()

	conn, ch, err := p.dial(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.retryAt = time.Now().Add(redialBackoff)
		return nil, err
	}
	if p.ready() {
		// another caller connected first
		_ = ch.Close()
		_ = conn.Close()
		return p.ch, nil
	}
	p.reset()
	p.conn, p.ch, p.retryAt = conn, ch, time.Time{}
	p.logger.Info("rabbitmq publisher connected", "queue", NotificationsQueue)
	return ch, nil
}

func (p *Publisher) ready() bool {
	return p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed()
}

func (p *Publisher) dial(ctx context.Context) (*amqp.Connection, *amqp.Channel, error) {
	timeout := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("dial broker: %w", err)
	}
	if timeout <= 0 {
		return nil, nil, fmt.Errorf("dial broker: %w", context.DeadlineExceeded)
	}

	// DefaultDial also bounds the TLS and AMQP handshake.
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declare(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// reset drops the current connection. Callers hold p.mu.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func declare(ch *amqp.Channel) error {
	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(NotificationsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	return nil
}
