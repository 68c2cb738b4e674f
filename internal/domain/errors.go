package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateIdentifier = errors.New("account already exists")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDate         = errors.New("invalid date")
	ErrMissingIdentifier   = errors.New("missing account identifier")
)
