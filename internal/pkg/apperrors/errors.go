package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidInput = errors.New("invalid input")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrOverpayment = errors.New("payment exceeds remaining balance")

	ErrReconciliation = errors.New("ledger reconciliation failed")

	ErrUnauthorized = errors.New("unauthorized")

	ErrConflict = errors.New("resource conflict")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports a malformed or out-of-range request field. The
// result matches both ErrInvalidInput and *ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message, Cause: ErrInvalidInput}
}

// OverpaymentError carries the balance the caller may still pay so the
// request can be corrected.
type OverpaymentError struct {
	Amount    decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("%s: payment %s exceeds remaining balance %s",
		ErrOverpayment, e.Amount.StringFixed(2), e.Remaining.StringFixed(2))
}

func (e *OverpaymentError) Unwrap() error {
	return ErrOverpayment
}

// ReconciliationError means a derived ledger violated its invariants even
// though every payment passed validation. It is an alerting condition.
type ReconciliationError struct {
	LoanID  string
	Balance decimal.Decimal
	Reason  string
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s: loan %s: %s (balance %s)", ErrReconciliation, e.LoanID, e.Reason, e.Balance.StringFixed(2))
}

func (e *ReconciliationError) Unwrap() error {
	return ErrReconciliation
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
