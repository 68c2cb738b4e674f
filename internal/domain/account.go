package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a customer account keyed by an external identifier.
type Account struct {
	ID         string
	Identifier string
	Name       string
	Statement  Statement
	CreatedAt  time.Time
}

// Balance returns the balance derived from the account statement.
func (a *Account) Balance() decimal.Decimal {
	return a.Statement.Balance()
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance()) {
		return ErrInsufficientFunds
	}
	return nil
}

// Rename replaces the display name. Nothing else on the account changes.
func (a *Account) Rename(name string) {
	a.Name = name
}

// Record appends op to the account statement.
func (a *Account) Record(op Operation) {
	a.Statement = a.Statement.Append(op)
}

// Clone returns a deep copy so callers never share the statement backing array.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Statement = a.Statement.Clone()
	return &cp
}
