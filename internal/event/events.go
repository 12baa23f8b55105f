package event

import (
	"context"
	"time"
)

// Money fields are fixed two-decimal strings so consumers never round.

type CustomerEventPayload struct {
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type LoanEventPayload struct {
	LoanID            string `json:"loanId"`
	CustomerID        string `json:"customerId"`
	Principal         string `json:"principal"`
	AnnualRatePercent string `json:"annualRatePercent"`
	PeriodYears       int    `json:"periodYears"`
	Interest          string `json:"interest"`
	TotalPayable      string `json:"totalPayable"`
	MonthlyEmi        string `json:"monthlyEmi"`
	Status            string `json:"status"`
}

type LoanCreatedEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	Payload   LoanEventPayload `json:"payload"`
}

type PaymentEventPayload struct {
	PaymentID string `json:"paymentId"`
	LoanID    string `json:"loanId"`
	Amount    string `json:"amount"`
	Kind      string `json:"kind"`
	Balance   string `json:"balance"`
	EmisLeft  int64  `json:"emisLeft"`
	Status    string `json:"status"`
}

type PaymentRecordedEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   PaymentEventPayload `json:"payload"`
}

type LoanPaidOffEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	LoanID     string    `json:"loanId"`
	CustomerID string    `json:"customerId"`
}

type ReconciliationFailedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	LoanID    string    `json:"loanId"`
	Balance   string    `json:"balance"`
	Reason    string    `json:"reason"`
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return p.publish(ctx, RoutingKeyCustomerCreated, event)
}

func (p *RabbitMQEventPublisher) PublishLoanCreated(ctx context.Context, event LoanCreatedEvent) error {
	return p.publish(ctx, RoutingKeyLoanCreated, event)
}

func (p *RabbitMQEventPublisher) PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error {
	return p.publish(ctx, RoutingKeyPaymentRecorded, event)
}

func (p *RabbitMQEventPublisher) PublishLoanPaidOff(ctx context.Context, event LoanPaidOffEvent) error {
	return p.publish(ctx, RoutingKeyLoanPaidOff, event)
}

func (p *RabbitMQEventPublisher) PublishReconciliationFailed(ctx context.Context, event ReconciliationFailedEvent) error {
	return p.publish(ctx, RoutingKeyReconciliationFailed, event)
}
