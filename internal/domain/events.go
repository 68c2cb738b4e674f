package domain

import "time"

// Event types
const (
	EventTypeAccountCreated    = "account.created"
	EventTypeAccountRenamed    = "account.renamed"
	EventTypeAccountDeleted    = "account.deleted"
	EventTypeOperationRecorded = "operation.recorded"
)

// Event is a domain event emitted after a successful mutation.
type Event struct {
	Type        string    `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID  string `json:"account_id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// AccountRenamedEvent payload
type AccountRenamedEvent struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

// AccountDeletedEvent payload
type AccountDeletedEvent struct {
	AccountID  string `json:"account_id"`
	Identifier string `json:"identifier"`
}

// OperationRecordedEvent payload
type OperationRecordedEvent struct {
	AccountID   string `json:"account_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Balance     string `json:"balance"`
}
