package loan

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository persists loans and their append-only payment log. Methods
// ending in InTx run inside the caller's transaction; a missing loan is
// reported as apperrors.ErrNotFound.
type Repository interface {
	CreateLoan(ctx context.Context, loan *Loan) (*Loan, error)

	GetLoanByID(ctx context.Context, loanID uuid.UUID) (*Loan, error)

	GetPaymentsByLoanID(ctx context.Context, loanID uuid.UUID) ([]Payment, error)

	GetLoanBalancesByCustomerID(ctx context.Context, customerID string) ([]LoanBalance, error)

	GetActiveLoanIDs(ctx context.Context) ([]uuid.UUID, error)

	// GetLoanForUpdateInTx locks the loan row until tx ends, serializing
	// payments on the same loan.
	GetLoanForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID) (*Loan, error)

	SumPaymentsInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID) (Money, error)

	AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment *Payment) (*Payment, error)

	// UpdateLoanStatusInTx moves the loan from one status to another and
	// reports whether a row changed.
	UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID, from, to LoanStatus) (bool, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}

// LedgerCache holds recently derived ledger views. Implementations may be
// eventually consistent; a miss returns (nil, false, nil).
type LedgerCache interface {
	GetLedger(ctx context.Context, loanID uuid.UUID) (*LedgerView, bool, error)

	// LedgerVersion returns a token that changes on every InvalidateLedger.
	LedgerVersion(ctx context.Context, loanID uuid.UUID) (int64, error)

	// SetLedger stores view unless the loan was invalidated after version
	// was read.
	SetLedger(ctx context.Context, view *LedgerView, version int64) error

	InvalidateLedger(ctx context.Context, loanID uuid.UUID) error
}
