package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// AccountContextKey is the context key for the account resolved by RequireAccount
	AccountContextKey ContextKey = "account"

	// IdentifierHeader carries the account identifier on account-scoped routes.
	IdentifierHeader = "identifier"

	maxBodyBytes = 1 << 20
)

// IdentifierSource selects where RequireAccount reads the identifier from.
type IdentifierSource int

const (
	// SourceHeader reads the identifier header.
	SourceHeader IdentifierSource = iota
	// SourceBody reads the "identifier" field of the JSON body.
	SourceBody
)

// AccountChecker enforces an existence policy for an identifier.
type AccountChecker interface {
	Check(ctx context.Context, policy usecase.GuardPolicy, identifier string) (*domain.Account, error)
}

// GuardConfig configures RequireAccount.
type GuardConfig struct {
	Source       IdentifierSource
	ExpectExists bool
	// Message is written as {"error": Message} when the check fails.
	Message string
	// StatusCode is used when the check fails. Defaults to 400.
	StatusCode int
}

// RequireAccount rejects requests whose account existence disagrees with
// cfg.ExpectExists. On success a found account is stored in the request
// context; see AccountFromContext.
func RequireAccount(guard AccountChecker, cfg GuardConfig) func(http.Handler) http.Handler {
	if cfg.StatusCode == 0 {
		cfg.StatusCode = http.StatusBadRequest
	}
	if cfg.Message == "" {
		if cfg.ExpectExists {
			cfg.Message = "Account not found"
		} else {
			cfg.Message = "Account already exists"
		}
	}
	policy := usecase.GuardPolicy{ExpectExists: cfg.ExpectExists}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier, err := extractIdentifier(r, cfg.Source)
			if err != nil {
				writeGuardError(w, http.StatusBadRequest, "invalid request body")
				return
			}

			account, err := guard.Check(r.Context(), policy, identifier)
			switch {
			case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrDuplicateIdentifier):
				writeGuardError(w, cfg.StatusCode, cfg.Message)
				return
			case err != nil:
				writeGuardError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if account != nil {
				r = r.WithContext(context.WithValue(r.Context(), AccountContextKey, account))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AccountFromContext returns the account resolved by RequireAccount.
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	account, ok := ctx.Value(AccountContextKey).(*domain.Account)
	return account, ok
}

// extractIdentifier reads the identifier without consuming the body.
// A body that is not a JSON object yields an empty identifier so the
// handler reports the decode failure itself.
func extractIdentifier(r *http.Request, source IdentifierSource) (string, error) {
	if source == SourceHeader {
		return r.Header.Get(IdentifierHeader), nil
	}

	body, err := readAndRestoreBody(r)
	if err != nil || body == nil {
		return "", err
	}

	var payload struct {
		Identifier string `json:"identifier"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil
	}

	return payload.Identifier, nil
}

func writeGuardError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}
