package eventpublisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
)

func testEvent() *domain.Event {
	return &domain.Event{
		ID:            "evt-1",
		AggregateID:   "w1",
		AggregateType: domain.AggregateTypeWallet,
		EventType:     domain.EventTypeLedgerSynced,
		Payload:       map[string]any{"wallet_id": "w1", "month": "2024-01"},
		CreatedAt:     time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLogPublisherWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	if err := p.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"event_type":"ledger.synced"`, `"aggregate_id":"w1"`, `"payload":{"month":"2024-01","wallet_id":"w1"}`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %s, got %s", want, out)
		}
	}
}

type stubChannel struct {
	mu        sync.Mutex
	exchange  string
	key       string
	published []amqp091.Publishing
	err       error
	closed    bool
}

func (c *stubChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected publish deadline")
	}
	if c.err != nil {
		return c.err
	}

	c.exchange = exchange
	c.key = key
	c.published = append(c.published, msg)
	return nil
}

func (c *stubChannel) Close() error {
	c.closed = true
	return nil
}

func TestAMQPPublisherRoutesByEventType(t *testing.T) {
	ch := &stubChannel{}
	p := newAMQPPublisherWithChannel(ch, "spendwise.events", zerolog.Nop())

	if err := p.Publish(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ch.exchange != "spendwise.events" || ch.key != domain.EventTypeLedgerSynced {
		t.Fatalf("unexpected routing: exchange=%s key=%s", ch.exchange, ch.key)
	}
	if len(ch.published) != 1 {
		t.Fatalf("expected one message, got %d", len(ch.published))
	}

	msg := ch.published[0]
	if msg.ContentType != "application/json" || msg.DeliveryMode != amqp091.Persistent || msg.MessageId != "evt-1" {
		t.Fatalf("unexpected publishing: %+v", msg)
	}

	var decoded Message
	if err := json.Unmarshal(msg.Body, &decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.AggregateID != "w1" || decoded.Payload["month"] != "2024-01" {
		t.Fatalf("unexpected body: %+v", decoded)
	}

	if err := p.Close(); err != nil || !ch.closed {
		t.Fatalf("expected channel to be closed, err=%v", err)
	}
}

func TestAMQPPublisherWrapsErrors(t *testing.T) {
	boom := errors.New("channel closed")
	p := newAMQPPublisherWithChannel(&stubChannel{err: boom}, "x", zerolog.Nop())

	if err := p.Publish(context.Background(), testEvent()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped channel error, got %v", err)
	}
}

type countingPublisher struct {
	calls int
	err   error
}

func (p *countingPublisher) Publish(context.Context, *domain.Event) error {
	p.calls++
	return p.err
}

func TestBreakerPublisherOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &countingPublisher{err: errors.New("broker down")}
	p := NewBreakerPublisher(inner, BreakerConfig{MaxFailures: 2, OpenTimeout: time.Minute}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := p.Publish(context.Background(), testEvent()); err == nil {
			t.Fatalf("expected failure %d", i)
		}
	}

	if p.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", p.State())
	}

	err := p.Publish(context.Background(), testEvent())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected inner publisher to be skipped while open, got %d calls", inner.calls)
	}
}

func TestBreakerPublisherPassesThroughSuccess(t *testing.T) {
	inner := &countingPublisher{}
	p := NewBreakerPublisher(inner, BreakerConfig{}, zerolog.Nop())

	for i := 0; i < 10; i++ {
		if err := p.Publish(context.Background(), testEvent()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if inner.calls != 10 || p.State() != gobreaker.StateClosed {
		t.Fatalf("expected closed breaker with 10 calls, got %d in %s", inner.calls, p.State())
	}
}
