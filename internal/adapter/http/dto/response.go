package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// OperationResponse represents a statement entry in API responses.
type OperationResponse struct {
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OperationFromDomain converts a domain operation to response.
func OperationFromDomain(op domain.Operation) *OperationResponse {
	return &OperationResponse{
		Description: op.Description,
		Amount:      op.Amount,
		Type:        string(op.Type),
		CreatedAt:   op.CreatedAt,
	}
}

// StatementFromDomain converts a statement to responses, never nil.
func StatementFromDomain(statement domain.Statement) []*OperationResponse {
	result := make([]*OperationResponse, len(statement))
	for i, op := range statement {
		result[i] = OperationFromDomain(op)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID         string               `json:"id"`
	Identifier string               `json:"identifier"`
	Name       string               `json:"name"`
	Statement  []*OperationResponse `json:"statement"`
	CreatedAt  time.Time            `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		Identifier: a.Identifier,
		Name:       a.Name,
		Statement:  StatementFromDomain(a.Statement),
		CreatedAt:  a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse is the admin listing payload.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// BalanceResponse is returned by the balance endpoint.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details []ValidationError `json:"details,omitempty"`
}
