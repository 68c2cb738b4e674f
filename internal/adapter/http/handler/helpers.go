package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err and writes it.
func writeDomainError(w http.ResponseWriter, err error) {
	status, message := mapDomainError(err)
	writeError(w, status, message, "")
}

// decodeBody decodes a JSON request body into dst and runs struct validation.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if details := dto.Validate(dst); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Details: details,
		})
		return false
	}

	return true
}

// mapDomainError maps domain errors to an HTTP status and client message.
// Every domain failure is a client error.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusBadRequest, "Account not found"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		return http.StatusBadRequest, "Account already exists"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, "Insufficient funds!"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrAmountTooLarge):
		return http.StatusBadRequest, "invalid amount"
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, "invalid date"
	case errors.Is(err, domain.ErrInvalidAccountName):
		return http.StatusBadRequest, "invalid account name"
	case errors.Is(err, domain.ErrInvalidIdentifier), errors.Is(err, domain.ErrMissingIdentifier):
		return http.StatusBadRequest, "invalid identifier"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// requestIdentifier returns the identifier of the account resolved by the
// guard, falling back to the identifier header.
func requestIdentifier(r *http.Request) string {
	if account, ok := middleware.AccountFromContext(r.Context()); ok {
		return account.Identifier
	}
	return r.Header.Get(middleware.IdentifierHeader)
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
