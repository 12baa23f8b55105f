package loan

import (
	"fmt"
	"strings"
	"time"

	"loan-ledger/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type LoanStatus string

const (
	StatusActive  LoanStatus = "ACTIVE"
	StatusPaidOff LoanStatus = "PAID_OFF"
)

type PaymentKind string

const (
	PaymentScheduled PaymentKind = "SCHEDULED"
	PaymentLumpSum   PaymentKind = "LUMP_SUM"
)

// ParsePaymentKind accepts the canonical kinds case-insensitively and "EMI"
// as another name for a scheduled installment.
func ParsePaymentKind(raw string) (PaymentKind, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(PaymentScheduled), "EMI":
		return PaymentScheduled, nil
	case string(PaymentLumpSum):
		return PaymentLumpSum, nil
	default:
		return "", apperrors.NewValidationError("paymentType",
			fmt.Sprintf("must be one of %s, %s; got %q", PaymentScheduled, PaymentLumpSum, raw))
	}
}

// Terms are computed once when a loan is created and never recomputed.
type Terms struct {
	Interest     Money
	TotalPayable Money
	MonthlyEmi   Money
}

type Loan struct {
	ID                uuid.UUID
	CustomerID        string
	Principal         Money
	AnnualRatePercent Money
	PeriodYears       int
	Terms
	Status    LoanStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLoan freezes the loan terms. The returned loan has no ID yet; the
// repository assigns it on insert.
func NewLoan(customerID string, principal Money, periodYears int, annualRatePercent Money) (*Loan, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, apperrors.NewValidationError("customerId", "must not be empty")
	}

	terms, err := ComputeTerms(principal, periodYears, annualRatePercent)
	if err != nil {
		return nil, err
	}

	return &Loan{
		CustomerID:        customerID,
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		PeriodYears:       periodYears,
		Terms:             terms,
		Status:            StatusActive,
	}, nil
}

type Payment struct {
	ID        uuid.UUID
	LoanID    uuid.UUID
	Amount    Money
	Kind      PaymentKind
	CreatedAt time.Time
}

// Ledger is the state derived from a loan's terms and its payments.
type Ledger struct {
	AmountPaid Money
	Balance    Money
	EmisLeft   int64
	Status     LoanStatus
}

type LedgerView struct {
	Loan         *Loan
	Ledger       Ledger
	Transactions []Payment
}

type PaymentReceipt struct {
	PaymentID uuid.UUID
	LoanID    uuid.UUID
	Amount    Money
	Kind      PaymentKind
	Balance   Money
	EmisLeft  int64
	Status    LoanStatus
	CreatedAt time.Time
}

// LoanBalance pairs a loan with the sum of its payments, as read in one
// query for customer overviews.
type LoanBalance struct {
	Loan       *Loan
	AmountPaid Money
}

type LoanSummary struct {
	Loan   *Loan
	Ledger Ledger
}

type CustomerOverview struct {
	CustomerID    string
	TotalLoans    int
	TotalInterest Money
	Loans         []LoanSummary
}
