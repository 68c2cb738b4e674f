package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Identifier string `json:"identifier" validate:"required,max=64"`
	Name       string `json:"name" validate:"required,max=255"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Identifier: r.Identifier,
		Name:       r.Name,
	}
}

// RenameAccountRequest carries the new account name. The identifier comes
// from the request header.
type RenameAccountRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ToUseCaseInput converts to use case input.
func (r *RenameAccountRequest) ToUseCaseInput(identifier string) usecase.RenameAccountInput {
	return usecase.RenameAccountInput{
		Identifier: identifier,
		Name:       r.Name,
	}
}

// DepositRequest represents a credit to the account statement.
type DepositRequest struct {
	Description string          `json:"description" validate:"max=255"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput(identifier string) usecase.DepositInput {
	return usecase.DepositInput{
		Identifier:  identifier,
		Description: r.Description,
		Amount:      r.Amount,
	}
}

// WithdrawRequest represents a debit from the account statement.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput(identifier string) usecase.WithdrawInput {
	return usecase.WithdrawInput{
		Identifier: identifier,
		Amount:     r.Amount,
	}
}
