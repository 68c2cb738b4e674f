package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

// StatementUseCase records deposits and withdrawals and answers statement
// and balance queries.
type StatementUseCase struct {
	accountRepo AccountRepository
	options
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(accountRepo AccountRepository, opts ...Option) *StatementUseCase {
	return &StatementUseCase{
		accountRepo: accountRepo,
		options:     newOptions(opts),
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	Identifier  string
	Description string
	Amount      decimal.Decimal
}

// Deposit appends a credit operation to the account statement.
func (uc *StatementUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Operation, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var op domain.Operation
	account, err := uc.accountRepo.Update(ctx, input.Identifier, func(a *domain.Account) error {
		op = domain.NewCredit(input.Amount, input.Description, uc.clock.Now())
		a.Record(op)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorded(ctx, account, op)

	return &op, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	Identifier string
	Amount     decimal.Decimal
}

// Withdraw appends a debit operation when the current balance covers amount.
// The balance check, the timestamp and the append happen in the same
// repository update, so statement order matches created_at order.
func (uc *StatementUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Operation, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var op domain.Operation
	account, err := uc.accountRepo.Update(ctx, input.Identifier, func(a *domain.Account) error {
		if err := a.ValidateDebit(input.Amount); err != nil {
			return err
		}
		op = domain.NewDebit(input.Amount, uc.clock.Now())
		a.Record(op)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			uc.metrics.WithdrawalRejected()
			uc.logger.Debug().
				Str("amount", input.Amount.String()).
				Msg("withdrawal rejected")
		}
		return nil, err
	}

	uc.recorded(ctx, account, op)

	return &op, nil
}

// GetStatementInput represents input for a statement query.
type GetStatementInput struct {
	Identifier string
	// Date is an optional calendar day (YYYY-MM-DD). When set, only
	// operations created at or before local midnight of that day are returned.
	Date string
}

// GetStatement returns the account statement, optionally cut at a date.
func (uc *StatementUseCase) GetStatement(ctx context.Context, input GetStatementInput) (domain.Statement, error) {
	account, err := uc.accountRepo.GetByIdentifier(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}

	if input.Date == "" {
		return account.Statement, nil
	}

	at, err := domain.ParseStatementDate(input.Date)
	if err != nil {
		return nil, err
	}

	return account.Statement.AsOf(at), nil
}

// GetBalance returns the balance derived from the account statement.
func (uc *StatementUseCase) GetBalance(ctx context.Context, identifier string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance(), nil
}

func (uc *StatementUseCase) recorded(ctx context.Context, account *domain.Account, op domain.Operation) {
	uc.metrics.OperationRecorded(op.Type, op.Amount)
	uc.publish(ctx, domain.EventTypeOperationRecorded, account.ID, domain.OperationRecordedEvent{
		AccountID:   account.ID,
		Type:        string(op.Type),
		Amount:      op.Amount.String(),
		Description: op.Description,
		Balance:     account.Balance().String(),
	})
}
