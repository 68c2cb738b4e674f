// Package memory holds the process-lifetime account registry.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

var _ usecase.AccountRepository = (*AccountRepository)(nil)

// AccountRepository implements usecase.AccountRepository in memory.
// A single lock serializes every mutation, so the identifier uniqueness
// check and the insert are atomic, and so is a withdraw's balance check and append.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // keyed by identifier
	order    []string                   // identifiers in creation order
}

// NewAccountRepository creates an empty AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Create inserts a copy of account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Identifier]; exists {
		return domain.ErrDuplicateIdentifier
	}

	r.accounts[account.Identifier] = account.Clone()
	r.order = append(r.order, account.Identifier)

	return nil
}

// GetByIdentifier returns a detached copy of the account.
func (r *AccountRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[identifier]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account.Clone(), nil
}

// Update applies fn to a working copy and stores it only when fn succeeds.
// ID, Identifier and CreatedAt are immutable and restored after fn runs.
func (r *AccountRepository) Update(ctx context.Context, identifier string, fn func(account *domain.Account) error) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[identifier]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	working.ID = stored.ID
	working.Identifier = stored.Identifier
	working.CreatedAt = stored.CreatedAt
	r.accounts[identifier] = working

	return working.Clone(), nil
}

// Delete removes exactly the account registered under identifier.
func (r *AccountRepository) Delete(ctx context.Context, identifier string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[identifier]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	delete(r.accounts, identifier)
	if i := slices.Index(r.order, identifier); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	return account, nil
}

// List returns accounts in creation order.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset >= len(r.order) {
		return []*domain.Account{}, nil
	}

	end := min(offset+limit, len(r.order))
	accounts := make([]*domain.Account, 0, end-offset)
	for _, identifier := range r.order[offset:end] {
		accounts = append(accounts, r.accounts[identifier].Clone())
	}

	return accounts, nil
}

// Len returns the number of registered accounts.
func (r *AccountRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
