package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLoan() *loan.Loan {
	return &loan.Loan{
		ID:                uuid.MustParse("6f1c2a51-8d4e-4b8e-9c39-0a1f1c2b3d4e"),
		CustomerID:        "C1",
		Principal:         loan.MustParseMoney("10000"),
		AnnualRatePercent: loan.MustParseMoney("7.5"),
		PeriodYears:       3,
		Terms: loan.Terms{
			Interest:     loan.MustParseMoney("2250"),
			TotalPayable: loan.MustParseMoney("12250"),
			MonthlyEmi:   loan.MustParseMoney("340.28"),
		},
		Status: loan.StatusActive,
	}
}

func TestCreateLoanRequestDecodeAndValidate(t *testing.T) {
	t.Run("accepts strings and numbers", func(t *testing.T) {
		var req CreateLoanRequest
		body := `{"customerId":"C1","principal":"10000.50","periodYears":2,"annualRatePercent":7.5}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		assert.NoError(t, req.Validate())
		assert.Equal(t, "10000.5", req.Principal.String())
		assert.Equal(t, "7.5", req.AnnualRatePercent.String())
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing customer", `{"principal":"1","periodYears":1,"annualRatePercent":"1"}`, "customerId"},
		{"missing principal", `{"customerId":"C1","periodYears":1,"annualRatePercent":"1"}`, "principal"},
		{"missing period", `{"customerId":"C1","principal":"1","annualRatePercent":"1"}`, "periodYears"},
		{"missing rate", `{"customerId":"C1","principal":"1","periodYears":1}`, "annualRatePercent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateLoanRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()

			var validationErr *apperrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	t.Run("zero rate is present", func(t *testing.T) {
		var req CreateLoanRequest
		require.NoError(t, json.Unmarshal([]byte(`{"customerId":"C1","principal":"1","periodYears":1,"annualRatePercent":0}`), &req))
		assert.NoError(t, req.Validate())
	})
}

func TestRecordPaymentRequestValidate(t *testing.T) {
	var req RecordPaymentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"5000.00"}`), &req))
	assert.ErrorIs(t, req.Validate(), apperrors.ErrInvalidInput)

	req.PaymentType = "EMI"
	assert.NoError(t, req.Validate())

	assert.ErrorIs(t, (&RecordPaymentRequest{PaymentType: "EMI"}).Validate(), apperrors.ErrInvalidInput)
}

func TestNewLoanResponseFormatsMoney(t *testing.T) {
	resp := NewLoanResponse(sampleLoan())

	assert.Equal(t, "6f1c2a51-8d4e-4b8e-9c39-0a1f1c2b3d4e", resp.ID)
	assert.Equal(t, "10000.00", resp.Principal)
	assert.Equal(t, "7.5", resp.AnnualRatePercent)
	assert.Equal(t, "2250.00", resp.Interest)
	assert.Equal(t, "12250.00", resp.TotalPayable)
	assert.Equal(t, "340.28", resp.MonthlyEmi)
	assert.Equal(t, "ACTIVE", resp.Status)
}

func TestNewLedgerResponse(t *testing.T) {
	l := sampleLoan()
	paidAt := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	view := &loan.LedgerView{
		Loan: l,
		Ledger: loan.Ledger{
			AmountPaid: loan.MustParseMoney("340.28"),
			Balance:    loan.MustParseMoney("11909.72"),
			EmisLeft:   35,
			Status:     loan.StatusActive,
		},
		Transactions: []loan.Payment{
			{ID: uuid.New(), LoanID: l.ID, Amount: loan.MustParseMoney("340.28"), Kind: loan.PaymentScheduled, CreatedAt: paidAt},
		},
	}

	resp := NewLedgerResponse(view)

	assert.Equal(t, "340.28", resp.AmountPaid)
	assert.Equal(t, "11909.72", resp.Balance)
	assert.Equal(t, int64(35), resp.EmisLeft)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "SCHEDULED", resp.Transactions[0].Type)
	assert.Equal(t, paidAt, resp.Transactions[0].Date)
}

func TestNewLedgerResponseWithoutPaymentsHasEmptyList(t *testing.T) {
	resp := NewLedgerResponse(&loan.LedgerView{Loan: sampleLoan()})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"transactions":[]`)
}

func TestNewCustomerOverviewResponse(t *testing.T) {
	l := sampleLoan()
	overview := &loan.CustomerOverview{
		CustomerID:    "C1",
		TotalLoans:    1,
		TotalInterest: loan.MustParseMoney("2250"),
		Loans: []loan.LoanSummary{
			{Loan: l, Ledger: loan.Ledger{AmountPaid: loan.MustParseMoney("0"), Balance: l.TotalPayable, EmisLeft: 36, Status: loan.StatusActive}},
		},
	}

	resp := NewCustomerOverviewResponse(overview)

	assert.Equal(t, 1, resp.TotalLoans)
	assert.Equal(t, "2250.00", resp.TotalInterest)
	require.Len(t, resp.Loans, 1)
	assert.Equal(t, "2250.00", resp.Loans[0].TotalInterest)
	assert.Equal(t, "0.00", resp.Loans[0].AmountPaid)
	assert.Equal(t, int64(36), resp.Loans[0].EmisLeft)
}

func TestNewPaymentReceiptResponse(t *testing.T) {
	r := &loan.PaymentReceipt{
		PaymentID: uuid.New(),
		LoanID:    uuid.New(),
		Amount:    loan.MustParseMoney("100"),
		Kind:      loan.PaymentLumpSum,
		Balance:   loan.MustParseMoney("0"),
		Status:    loan.StatusPaidOff,
	}

	resp := NewPaymentReceiptResponse(r)

	assert.Equal(t, "100.00", resp.Amount)
	assert.Equal(t, "0.00", resp.Balance)
	assert.Equal(t, "LUMP_SUM", resp.Type)
	assert.Equal(t, "PAID_OFF", resp.Status)
}

func TestNewCustomerResponse(t *testing.T) {
	now := time.Now()
	resp := NewCustomerResponse(&customer.Customer{CustomerID: "C1", Name: "Asha", CreatedAt: now, UpdatedAt: now})

	assert.Equal(t, "C1", resp.CustomerID)
	assert.Equal(t, "Asha", resp.Name)
}
