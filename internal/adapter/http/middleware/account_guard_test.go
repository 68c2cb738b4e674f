package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

type stubChecker struct {
	accounts map[string]*domain.Account
	err      error
	seen     []string
}

func (s *stubChecker) Check(ctx context.Context, policy usecase.GuardPolicy, identifier string) (*domain.Account, error) {
	s.seen = append(s.seen, identifier)
	if s.err != nil {
		return nil, s.err
	}

	account, found := s.accounts[identifier]
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

func newStubChecker() *stubChecker {
	return &stubChecker{accounts: map[string]*domain.Account{
		"111": {ID: "acc-1", Identifier: "111", Name: "Ana"},
	}}
}

func decodeGuardError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rr.Body.String(), err)
	}
	return body["error"]
}

func TestRequireAccount_Header(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		cfg        GuardConfig
		wantStatus int
		wantError  string
		wantNext   bool
	}{
		{
			name:       "existing account passes",
			identifier: "111",
			cfg:        GuardConfig{Source: SourceHeader, ExpectExists: true},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing account rejected with default message",
			identifier: "999",
			cfg:        GuardConfig{Source: SourceHeader, ExpectExists: true},
			wantStatus: http.StatusBadRequest,
			wantError:  "Account not found",
		},
		{
			name:       "absent header treated as missing account",
			cfg:        GuardConfig{Source: SourceHeader, ExpectExists: true},
			wantStatus: http.StatusBadRequest,
			wantError:  "Account not found",
		},
		{
			name:       "custom message and status",
			identifier: "999",
			cfg:        GuardConfig{Source: SourceHeader, ExpectExists: true, Message: "nope", StatusCode: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantError:  "nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newStubChecker()
			var called bool
			var resolved *domain.Account
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				resolved, _ = AccountFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/balance", nil)
			if tt.identifier != "" {
				req.Header.Set(IdentifierHeader, tt.identifier)
			}
			rr := httptest.NewRecorder()

			RequireAccount(checker, tt.cfg)(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if called != tt.wantNext {
				t.Fatalf("expected next called=%v, got %v", tt.wantNext, called)
			}
			if tt.wantNext {
				if resolved == nil || resolved.ID != "acc-1" {
					t.Fatalf("expected account in context, got %+v", resolved)
				}
				return
			}
			if got := decodeGuardError(t, rr); got != tt.wantError {
				t.Fatalf("expected error %q, got %q", tt.wantError, got)
			}
		})
	}
}

func TestRequireAccount_BodyMustNotExist(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantNext   bool
	}{
		{name: "new identifier passes", body: `{"identifier":"222","name":"Bia"}`, wantStatus: http.StatusOK, wantNext: true},
		{name: "taken identifier rejected", body: `{"identifier":"111","name":"Ana"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body reaches handler", body: `{`, wantStatus: http.StatusOK, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newStubChecker()
			var handlerBody string
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				raw, _ := io.ReadAll(r.Body)
				handlerBody = string(raw)
				if _, ok := AccountFromContext(r.Context()); ok {
					t.Errorf("no account expected in context for must-not-exist guard")
				}
			})

			req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			RequireAccount(checker, GuardConfig{Source: SourceBody, ExpectExists: false})(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if called != tt.wantNext {
				t.Fatalf("expected next called=%v, got %v", tt.wantNext, called)
			}
			if called && handlerBody != tt.body {
				t.Fatalf("expected body to be restored, got %q", handlerBody)
			}
			if !called {
				if got := decodeGuardError(t, rr); got != "Account already exists" {
					t.Fatalf("unexpected error message %q", got)
				}
			}
		})
	}
}

func TestRequireAccount_CheckerFailure(t *testing.T) {
	checker := &stubChecker{err: errors.New("registry unavailable")}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/balance", nil)
	req.Header.Set(IdentifierHeader, "111")
	rr := httptest.NewRecorder()

	RequireAccount(checker, GuardConfig{ExpectExists: true})(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestAccountFromContext_Missing(t *testing.T) {
	if _, ok := AccountFromContext(context.Background()); ok {
		t.Fatal("expected no account in empty context")
	}
}
