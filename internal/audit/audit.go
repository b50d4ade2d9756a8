// Package audit publishes a record of every admin content change to Kafka.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Actions recorded for content changes.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is one content change. Fields lists the document fields an update
// touched; it is empty for creates and deletes.
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	Actor  string    `json:"actor,omitempty"`
	Fields []string  `json:"fields,omitempty"`
	At     time.Time `json:"at"`
}

// Recorder stores audit events. Implementations must be safe for concurrent
// use.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Nop drops every event. It is used when KAFKA_BROKERS is unset.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaRecorder writes events as JSON messages keyed by "<entity>:<id>" so
// every change to one document lands on the same partition.
type KafkaRecorder struct {
	w messageWriter
}

// NewKafkaRecorder builds an asynchronous writer; delivery errors are
// reported to logger rather than to the request that produced the event.
func NewKafkaRecorder(brokers []string, topic string, logger *slog.Logger) *KafkaRecorder {
	return &KafkaRecorder{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				logger.Warn("audit: kafka delivery failed", "topic", topic, "messages", len(msgs), "error", err)
			}
		},
	}}
}

func (r *KafkaRecorder) Record(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return r.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Entity + ":" + ev.ID),
		Value: payload,
		Time:  ev.At,
	})
}

// Close flushes pending messages.
func (r *KafkaRecorder) Close() error { return r.w.Close() }
