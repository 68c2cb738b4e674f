package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// Option configures the optional collaborators of a use case.
type Option func(*options)

type options struct {
	clock   Clock
	events  EventPublisher
	metrics MetricsRecorder
	logger  zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		clock:   SystemClock{},
		events:  nopPublisher{},
		metrics: nopRecorder{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock overrides the timestamp source.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithEventPublisher publishes domain events after successful mutations.
func WithEventPublisher(events EventPublisher) Option {
	return func(o *options) {
		if events != nil {
			o.events = events
		}
	}
}

// WithMetrics records business metrics.
func WithMetrics(metrics MetricsRecorder) Option {
	return func(o *options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// WithLogger sets the use case logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// publish sends event and logs failures. Events are best effort: the
// mutation has already been applied.
func (o options) publish(ctx context.Context, eventType, aggregateID string, payload any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultPublishTimeout)
	defer cancel()

	event := domain.Event{
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  o.clock.Now(),
		Payload:     payload,
	}

	if err := o.events.Publish(ctx, event); err != nil {
		o.logger.Warn().
			Err(err).
			Str("event_type", eventType).
			Str("aggregate_id", aggregateID).
			Msg("failed to publish event")
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) error { return nil }

type nopRecorder struct{}

func (nopRecorder) AccountCreated()                                         {}
func (nopRecorder) AccountDeleted()                                         {}
func (nopRecorder) OperationRecorded(domain.OperationType, decimal.Decimal) {}
func (nopRecorder) WithdrawalRejected()                                     {}
