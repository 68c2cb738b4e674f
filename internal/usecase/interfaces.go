package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// AccountRepository is the account registry. Implementations own identifier
// uniqueness and must serialize mutations of a single account.
type AccountRepository interface {
	// Create inserts account, failing with domain.ErrDuplicateIdentifier when
	// the identifier is taken. The check and the insert are atomic.
	Create(ctx context.Context, account *domain.Account) error
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	// Update applies fn to the stored account. Nothing is written when fn fails.
	Update(ctx context.Context, identifier string, fn func(account *domain.Account) error) (*domain.Account, error)
	// Delete removes the account stored under identifier and returns it.
	Delete(ctx context.Context, identifier string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// AccountFinder resolves an identifier to an account.
type AccountFinder interface {
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies operation timestamps.
type Clock interface {
	Now() time.Time
}

// EventPublisher publishes domain events to external systems.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// MetricsRecorder records business metrics.
type MetricsRecorder interface {
	AccountCreated()
	AccountDeleted()
	OperationRecorded(opType domain.OperationType, amount decimal.Decimal)
	WithdrawalRejected()
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes the key so the request can be retried.
	Release(ctx context.Context, key string) error
}
