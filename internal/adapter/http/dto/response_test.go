package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/domain"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	account := &domain.Account{
		ID:         "acc-1",
		Identifier: "111",
		Name:       "Ana",
		Statement: domain.Statement{
			domain.NewCredit(decimal.NewFromInt(100), "salary", now),
			domain.NewDebit(decimal.NewFromInt(30), now),
		},
		CreatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != "acc-1" || resp.Identifier != "111" || resp.Name != "Ana" {
		t.Fatalf("unexpected account response: %+v", resp)
	}
	if len(resp.Statement) != 2 || resp.Statement[0].Type != "credit" || resp.Statement[1].Type != "debit" {
		t.Fatalf("unexpected statement: %+v", resp.Statement)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestAccountFromDomain_EmptyStatementEncodesAsArray(t *testing.T) {
	resp := AccountFromDomain(&domain.Account{ID: "acc-1", Identifier: "111", Name: "Ana"})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	statement, ok := decoded["statement"].([]any)
	if !ok || len(statement) != 0 {
		t.Fatalf("expected empty statement array, got %v", decoded["statement"])
	}
}

func TestOperationFromDomain_OmitsEmptyDescription(t *testing.T) {
	op := domain.NewDebit(decimal.NewFromInt(5), time.Now())

	raw, err := json.Marshal(OperationFromDomain(op))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["description"]; ok {
		t.Fatalf("expected description to be omitted, got %s", raw)
	}
	if decoded["type"] != "debit" {
		t.Fatalf("expected debit type, got %v", decoded["type"])
	}
}

func TestAmountsEncodeAsNumbers(t *testing.T) {
	raw, err := json.Marshal(BalanceResponse{Balance: decimal.RequireFromString("60.5")})
	if err != nil {
		t.Fatalf("marshal balance: %v", err)
	}
	if string(raw) != `{"balance":60.5}` {
		t.Fatalf("unexpected balance payload: %s", raw)
	}

	op := domain.NewDebit(decimal.NewFromInt(40), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	raw, err = json.Marshal(OperationFromDomain(op))
	if err != nil {
		t.Fatalf("marshal operation: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal operation: %v", err)
	}
	if amount, ok := decoded["amount"].(float64); !ok || amount != 40 {
		t.Fatalf("expected numeric amount 40, got %#v", decoded["amount"])
	}
}
