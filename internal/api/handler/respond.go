package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError maps the apperrors taxonomy onto HTTP status codes. Internal
// failures never leak their cause to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	detail := dto.ErrorDetail{Code: "INTERNAL", Message: "An unexpected error occurred."}

	var validationErr *apperrors.ValidationError
	var overpaymentErr *apperrors.OverpaymentError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		detail = dto.ErrorDetail{Code: "INVALID_INPUT", Message: validationErr.Message, Field: validationErr.Field}
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		detail = dto.ErrorDetail{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.As(err, &overpaymentErr):
		status = http.StatusUnprocessableEntity
		detail = dto.ErrorDetail{
			Code:             "OVERPAYMENT",
			Message:          "Payment amount exceeds remaining balance.",
			Field:            "amount",
			RemainingBalance: overpaymentErr.Remaining.StringFixed(2),
		}
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		detail = dto.ErrorDetail{Code: "NOT_FOUND", Message: "Resource not found."}
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		detail = dto.ErrorDetail{Code: "UNAUTHORIZED", Message: "Unauthorized."}
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrAlreadyExists):
		status = http.StatusConflict
		detail = dto.ErrorDetail{Code: "CONFLICT", Message: "Resource conflict."}
	case errors.Is(err, apperrors.ErrReconciliation):
		slog.Default().ErrorContext(r.Context(), "Ledger reconciliation failure", "path", r.URL.Path, "error", err)
	default:
		slog.Default().ErrorContext(r.Context(), "Unhandled internal error", "path", r.URL.Path, "error", err)
	}

	respondJSON(w, status, dto.ErrorResponse{Error: detail})
}

func getLoanIDFromURL(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "loanID")
	if idStr == "" {
		return uuid.Nil, apperrors.NewValidationError("loanID", "not found in URL path")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("loanID", "must be a UUID")
	}
	return id, nil
}

func getCustomerIDFromURL(r *http.Request) (string, error) {
	id := chi.URLParam(r, "customerID")
	if id == "" {
		return "", apperrors.NewValidationError("customerID", "not found in URL path")
	}
	return id, nil
}
