package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

var _ usecase.EventPublisher = (*EventPublisher)(nil)

// DefaultEventsStream is the stream domain events are appended to.
const DefaultEventsStream = "finledger.events"

// EventPublisher appends domain events to a Redis stream.
type EventPublisher struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

// NewEventPublisher creates a new EventPublisher. The stream is trimmed
// approximately to maxLen entries; zero disables trimming.
func NewEventPublisher(client redis.UniversalClient, stream string, maxLen int64) *EventPublisher {
	if stream == "" {
		stream = DefaultEventsStream
	}

	return &EventPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Publish appends event to the stream.
func (p *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":         event.Type,
			"aggregate_id": event.AggregateID,
			"event":        payload,
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
