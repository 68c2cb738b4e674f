package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the direction of a statement operation.
type OperationType string

const (
	// OperationCredit increases the balance.
	OperationCredit OperationType = "credit"
	// OperationDebit decreases the balance.
	OperationDebit OperationType = "debit"
)

// Operation represents a single statement line (credit or debit).
// Amount is never negative; the sign is carried by Type.
type Operation struct {
	CreatedAt   time.Time
	Type        OperationType
	Description string
	Amount      decimal.Decimal
}

// NewCredit builds a credit operation.
func NewCredit(amount decimal.Decimal, description string, at time.Time) Operation {
	return Operation{
		CreatedAt:   at,
		Type:        OperationCredit,
		Description: description,
		Amount:      amount,
	}
}

// NewDebit builds a debit operation. Debits carry no description.
func NewDebit(amount decimal.Decimal, at time.Time) Operation {
	return Operation{
		CreatedAt: at,
		Type:      OperationDebit,
		Amount:    amount,
	}
}

// Signed returns the amount with the sign implied by the operation type.
func (o Operation) Signed() decimal.Decimal {
	if o.Type == OperationDebit {
		return o.Amount.Neg()
	}
	return o.Amount
}
