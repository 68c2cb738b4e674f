package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPendingMarker is stored under a claimed key until the
	// response is known.
	IdempotencyPendingMarker = "processing"

	// DefaultPublishTimeout bounds a single event publish.
	DefaultPublishTimeout = 2 * time.Second
)
