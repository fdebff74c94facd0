// Package eventpublisher delivers committed ledger events to external
// systems: a structured log, an AMQP exchange, and a circuit breaker that
// guards either one.
package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
)

// Publisher delivers one event.
type Publisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// Message is the wire form of an event.
type Message struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   string         `json:"aggregate_id"`
	Payload       map[string]any `json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NewMessage converts an event to its wire form.
func NewMessage(event *domain.Event) Message {
	return Message{
		ID:            event.ID,
		EventType:     event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt.UTC(),
	}
}

// Encode marshals the event as JSON.
func Encode(event *domain.Event) ([]byte, error) {
	return json.Marshal(NewMessage(event))
}

// LogPublisher writes events to the log.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "events").Logger()}
}

// Publish logs the event.
func (p *LogPublisher) Publish(_ context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", payload).
		Msg("event published")

	return nil
}
