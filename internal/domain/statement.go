package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// statementDateFormat is lenient so both 2025-7-1 and 2025-07-01 parse.
const statementDateFormat = "2006-1-2"

// Statement is the ordered, append-only history of an account.
// Insertion order is chronological order.
type Statement []Operation

// Append returns the statement with op pushed to the end.
func (s Statement) Append(op Operation) Statement {
	return append(s, op)
}

// Balance folds the statement from zero: credits add, debits subtract.
func (s Statement) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, op := range s {
		balance = balance.Add(op.Signed())
	}
	return balance
}

// AsOf returns the operations created at or before at, in original order.
func (s Statement) AsOf(at time.Time) Statement {
	filtered := make(Statement, 0, len(s))
	for _, op := range s {
		if !op.CreatedAt.After(at) {
			filtered = append(filtered, op)
		}
	}
	return filtered
}

// Clone returns a copy with its own backing array. A nil statement clones
// to an empty one so it encodes as [] rather than null.
func (s Statement) Clone() Statement {
	cp := make(Statement, len(s))
	copy(cp, s)
	return cp
}

// ParseStatementDate parses a calendar day and returns local midnight of that day.
func ParseStatementDate(value string) (time.Time, error) {
	day, err := time.ParseInLocation(statementDateFormat, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q want format %q", ErrInvalidDate, value, statementDateFormat)
	}
	return day, nil
}
