package usecase

import (
	"context"

	"github.com/iho/finledger/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	options
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, opts ...Option) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		options:     newOptions(opts),
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Identifier string
	Name       string
}

// CreateAccount creates a new account with an empty statement.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateIdentifier(input.Identifier); err != nil {
		return nil, err
	}
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:         uc.idGen.Generate(),
		Identifier: input.Identifier,
		Name:       input.Name,
		Statement:  domain.Statement{},
		CreatedAt:  uc.clock.Now(),
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.metrics.AccountCreated()
	uc.logger.Info().Str("account_id", account.ID).Msg("account created")
	uc.publish(ctx, domain.EventTypeAccountCreated, account.ID, domain.AccountCreatedEvent{
		AccountID:  account.ID,
		Identifier: account.Identifier,
		Name:       account.Name,
	})

	return account, nil
}

// GetAccount retrieves an account by its external identifier.
func (uc *AccountUseCase) GetAccount(ctx context.Context, identifier string) (*domain.Account, error) {
	return uc.accountRepo.GetByIdentifier(ctx, identifier)
}

// RenameAccountInput represents input for renaming an account.
type RenameAccountInput struct {
	Identifier string
	Name       string
}

// RenameAccount changes the account name only.
func (uc *AccountUseCase) RenameAccount(ctx context.Context, input RenameAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.Update(ctx, input.Identifier, func(a *domain.Account) error {
		a.Rename(input.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.EventTypeAccountRenamed, account.ID, domain.AccountRenamedEvent{
		AccountID: account.ID,
		Name:      account.Name,
	})

	return account, nil
}

// DeleteAccount removes the account registered under identifier.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, identifier string) error {
	account, err := uc.accountRepo.Delete(ctx, identifier)
	if err != nil {
		return err
	}

	uc.metrics.AccountDeleted()
	uc.logger.Info().Str("account_id", account.ID).Msg("account deleted")
	uc.publish(ctx, domain.EventTypeAccountDeleted, account.ID, domain.AccountDeletedEvent{
		AccountID:  account.ID,
		Identifier: account.Identifier,
	})

	return nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts in creation order with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}
