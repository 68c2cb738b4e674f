package usecase

import (
	"context"
	"errors"

	"github.com/iho/finledger/internal/domain"
)

// GuardPolicy states whether an operation requires its account to exist.
type GuardPolicy struct {
	ExpectExists bool
}

var (
	// MustExist guards every operation on an existing account.
	MustExist = GuardPolicy{ExpectExists: true}
	// MustNotExist guards account creation.
	MustNotExist = GuardPolicy{ExpectExists: false}
)

// AccountGuard resolves an identifier and enforces an existence policy
// before an operation runs.
type AccountGuard struct {
	accounts AccountFinder
}

// NewAccountGuard creates a new AccountGuard.
func NewAccountGuard(accounts AccountFinder) *AccountGuard {
	return &AccountGuard{accounts: accounts}
}

// Check resolves identifier and compares the outcome with policy.
// It returns domain.ErrAccountNotFound or domain.ErrDuplicateIdentifier when
// they disagree. With MustNotExist the returned account is always nil.
func (g *AccountGuard) Check(ctx context.Context, policy GuardPolicy, identifier string) (*domain.Account, error) {
	account, err := g.accounts.GetByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	found := err == nil
	if found != policy.ExpectExists {
		if policy.ExpectExists {
			return nil, domain.ErrAccountNotFound
		}
		return nil, domain.ErrDuplicateIdentifier
	}

	if !policy.ExpectExists {
		return nil, nil
	}

	return account, nil
}
