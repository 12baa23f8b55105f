package apperrors

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestWrapDatabaseError(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapDatabaseError(cause, "could not load loan")

	assert.True(t, errors.Is(err, ErrDatabase))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "[DB_ERROR] could not load loan", err.Error())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("principal", "must be greater than zero")

	assert.True(t, errors.Is(err, ErrInvalidInput))

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "principal", validationErr.Field)
	assert.Equal(t, "validation failed for field 'principal': must be greater than zero", err.Error())
}

func TestOverpaymentError(t *testing.T) {
	err := error(&OverpaymentError{Amount: decimal.NewFromInt(101), Remaining: decimal.NewFromInt(100)})

	assert.True(t, errors.Is(err, ErrOverpayment))
	assert.Contains(t, err.Error(), "payment 101.00 exceeds remaining balance 100.00")

	var overpayment *OverpaymentError
	assert.True(t, errors.As(err, &overpayment))
	assert.True(t, overpayment.Remaining.Equal(decimal.NewFromInt(100)))
}

func TestReconciliationError(t *testing.T) {
	err := error(&ReconciliationError{LoanID: "abc", Balance: decimal.NewFromInt(-5), Reason: "negative balance"})

	assert.True(t, errors.Is(err, ErrReconciliation))
	assert.False(t, errors.Is(err, ErrOverpayment))
	assert.Equal(t, "ledger reconciliation failed: loan abc: negative balance (balance -5.00)", err.Error())
}
