package eventpublisher

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
)

// BreakerConfig configures the circuit breaker around a publisher.
type BreakerConfig struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the
	// breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
}

// BreakerPublisher stops calling a failing publisher until it recovers.
// While open, Publish fails fast with gobreaker.ErrOpenState.
type BreakerPublisher struct {
	next Publisher
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerPublisher wraps next with a circuit breaker.
func NewBreakerPublisher(next Publisher, cfg BreakerConfig, logger zerolog.Logger) *BreakerPublisher {
	if cfg.Name == "" {
		cfg.Name = "event-publisher"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	maxFailures := cfg.MaxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &BreakerPublisher{next: next, cb: cb}
}

// Publish delivers event through the breaker.
func (p *BreakerPublisher) Publish(ctx context.Context, event *domain.Event) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(ctx, event)
	})

	return err
}

// State reports the breaker state.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}
