package loan

import (
	"context"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/event"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

type TxMock struct {
	pgx.Tx
}

func (m *MockRepository) CreateLoan(ctx context.Context, loan *Loan) (*Loan, error) {
	args := m.Called(ctx, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loan), args.Error(1)
}

func (m *MockRepository) GetLoanByID(ctx context.Context, loanID uuid.UUID) (*Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loan), args.Error(1)
}

func (m *MockRepository) GetPaymentsByLoanID(ctx context.Context, loanID uuid.UUID) ([]Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payment), args.Error(1)
}

func (m *MockRepository) GetLoanBalancesByCustomerID(ctx context.Context, customerID string) ([]LoanBalance, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LoanBalance), args.Error(1)
}

func (m *MockRepository) GetActiveLoanIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) GetLoanForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID) (*Loan, error) {
	args := m.Called(ctx, tx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loan), args.Error(1)
}

func (m *MockRepository) SumPaymentsInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID) (Money, error) {
	args := m.Called(ctx, tx, loanID)
	return args.Get(0).(Money), args.Error(1)
}

func (m *MockRepository) AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment *Payment) (*Payment, error) {
	args := m.Called(ctx, tx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID, from, to LoanStatus) (bool, error) {
	args := m.Called(ctx, tx, loanID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) EnsureCustomer(ctx context.Context, customerID, name string) (*customer.Customer, bool, error) {
	args := m.Called(ctx, customerID, name)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*customer.Customer), args.Bool(1), args.Error(2)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID string) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockLedgerCache struct {
	mock.Mock
}

func (m *MockLedgerCache) GetLedger(ctx context.Context, loanID uuid.UUID) (*LedgerView, bool, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*LedgerView), args.Bool(1), args.Error(2)
}

func (m *MockLedgerCache) LedgerVersion(ctx context.Context, loanID uuid.UUID) (int64, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerCache) SetLedger(ctx context.Context, view *LedgerView, version int64) error {
	return m.Called(ctx, view, version).Error(0)
}

func (m *MockLedgerCache) InvalidateLedger(ctx context.Context, loanID uuid.UUID) error {
	return m.Called(ctx, loanID).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishLoanCreated(ctx context.Context, evt event.LoanCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishPaymentRecorded(ctx context.Context, evt event.PaymentRecordedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishLoanPaidOff(ctx context.Context, evt event.LoanPaidOffEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishReconciliationFailed(ctx context.Context, evt event.ReconciliationFailedEvent) error {
	return m.Called(ctx, evt).Error(0)
}
