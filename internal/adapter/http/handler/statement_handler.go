package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Operation, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Operation, error)
	GetStatement(ctx context.Context, input usecase.GetStatementInput) (domain.Statement, error)
	GetBalance(ctx context.Context, identifier string) (decimal.Decimal, error)
}

// StatementHandler handles ledger HTTP requests.
type StatementHandler struct {
	statementUC StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// Statement returns the operations of the account, optionally cut at ?date=.
func (h *StatementHandler) Statement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.statementUC.GetStatement(r.Context(), usecase.GetStatementInput{
		Identifier: requestIdentifier(r),
		Date:       r.URL.Query().Get("date"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

// Deposit records a credit.
func (h *StatementHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	op, err := h.statementUC.Deposit(r.Context(), req.ToUseCaseInput(requestIdentifier(r)))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(*op))
}

// Withdraw records a debit when the balance covers it.
func (h *StatementHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if !decodeBody(w, r, &req) {
		return
	}

	op, err := h.statementUC.Withdraw(r.Context(), req.ToUseCaseInput(requestIdentifier(r)))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(*op))
}

// Balance returns the balance derived from the statement.
func (h *StatementHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.statementUC.GetBalance(r.Context(), requestIdentifier(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}
