package customer

import (
	"context"

	"loan-ledger/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID string) (*Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
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
