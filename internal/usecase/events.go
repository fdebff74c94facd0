package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
)

const eventPublishTimeout = 5 * time.Second

// publishEvent delivers event best-effort. The state change it describes is
// already committed, so failures are logged and counted only.
func publishEvent(ctx context.Context, publisher EventPublisher, m *metrics.Metrics, logger zerolog.Logger, event *domain.Event) {
	if publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()

	status := "ok"
	if err := publisher.Publish(ctx, event); err != nil {
		status = "error"
		logger.Warn().
			Err(err).
			Str("event_id", event.ID).
			Str("event_type", event.EventType).
			Str("aggregate_id", event.AggregateID).
			Msg("failed to publish event")
	}

	if m != nil {
		m.EventsPublished.WithLabelValues(event.EventType, status).Inc()
	}
}

func newEvent(idGen IDGenerator, aggregateType, aggregateID, eventType string, payload map[string]any, at time.Time) *domain.Event {
	return &domain.Event{
		ID:            idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     at,
	}
}
