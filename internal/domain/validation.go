package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidIdentifier  = errors.New("invalid account identifier")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxIdentifierLength  = 64
	MaxOperationAmount   = "1000000000000" // 1 trillion
)

var maxOperationAmount = decimal.RequireFromString(MaxOperationAmount)

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateIdentifier validates the external account key (e.g. a tax number).
func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return ErrMissingIdentifier
	}

	if len(identifier) > MaxIdentifierLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidIdentifier, MaxIdentifierLength)
	}

	if strings.IndexFunc(identifier, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: must not contain whitespace", ErrInvalidIdentifier)
	}

	return nil
}

// ValidateAmount validates a deposit or withdrawal amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(maxOperationAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxOperationAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
