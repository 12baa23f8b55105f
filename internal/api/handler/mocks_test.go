package handler

import (
	"context"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/loan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockLoanService struct {
	mock.Mock
}

var _ loan.LoanService = (*MockLoanService)(nil)

func (m *MockLoanService) CreateLoan(ctx context.Context, customerID string, principal loan.Money, periodYears int, annualRatePercent loan.Money) (*loan.Loan, error) {
	args := m.Called(ctx, customerID, principal, periodYears, annualRatePercent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Loan), args.Error(1)
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Loan), args.Error(1)
}

func (m *MockLoanService) RecordPayment(ctx context.Context, loanID uuid.UUID, amount loan.Money, kind loan.PaymentKind) (*loan.PaymentReceipt, error) {
	args := m.Called(ctx, loanID, amount, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.PaymentReceipt), args.Error(1)
}

func (m *MockLoanService) GetLedger(ctx context.Context, loanID uuid.UUID) (*loan.LedgerView, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.LedgerView), args.Error(1)
}

func (m *MockLoanService) GetCustomerOverview(ctx context.Context, customerID string) (*loan.CustomerOverview, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.CustomerOverview), args.Error(1)
}

func (m *MockLoanService) ReconcileLoan(ctx context.Context, loanID uuid.UUID) (*loan.Ledger, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loan.Ledger), args.Error(1)
}

func (m *MockLoanService) ListActiveLoanIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

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
