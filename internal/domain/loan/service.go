package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/event"
	"loan-ledger/internal/infrastructure/monitoring"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LoanService interface {
	// CreateLoan requires an existing customer; see
	// customer.CustomerService.EnsureCustomer.
	CreateLoan(ctx context.Context, customerID string, principal Money, periodYears int, annualRatePercent Money) (*Loan, error)

	GetLoan(ctx context.Context, loanID uuid.UUID) (*Loan, error)

	// RecordPayment validates and appends a payment and flips the loan to
	// PAID_OFF in the same transaction, holding the loan row lock throughout.
	RecordPayment(ctx context.Context, loanID uuid.UUID, amount Money, kind PaymentKind) (*PaymentReceipt, error)

	GetLedger(ctx context.Context, loanID uuid.UUID) (*LedgerView, error)

	GetCustomerOverview(ctx context.Context, customerID string) (*CustomerOverview, error)

	// ReconcileLoan re-derives the ledger under the loan lock and corrects a
	// stale ACTIVE status. Payments are never modified.
	ReconcileLoan(ctx context.Context, loanID uuid.UUID) (*Ledger, error)

	ListActiveLoanIDs(ctx context.Context) ([]uuid.UUID, error)
}

type loanServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	cache           LedgerCache
	pub             event.EventPublisher
	logger          *slog.Logger
}

// NewLoanService wires the service. cache and pub may be nil.
func NewLoanService(r Repository, cs customer.CustomerService, cache LedgerCache, pub event.EventPublisher, logger *slog.Logger) LoanService {
	return &loanServiceImpl{
		repo:            r,
		customerService: cs,
		cache:           cache,
		pub:             pub,
		logger:          logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, customerID string, principal Money, periodYears int, annualRatePercent Money) (*Loan, error) {
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Creating new loan")

	loan, err := NewLoan(customerID, principal, periodYears, annualRatePercent)
	if err != nil {
		logger.WarnContext(ctx, "Rejected loan terms", slog.Any("error", err))
		return nil, err
	}

	if _, err := s.customerService.GetCustomer(ctx, loan.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Customer not found")
			return nil, err
		}
		logger.ErrorContext(ctx, "Failed to verify customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify customer %s: %w", customerID, err)
	}

	created, err := s.repo.CreateLoan(ctx, loan)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to save loan", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save loan: %w", apperrors.ErrInternalServer, err)
	}

	monitoring.RecordLoanCreated()
	logger.InfoContext(ctx, "Loan created successfully",
		slog.String("loanID", created.ID.String()),
		slog.String("totalPayable", created.TotalPayable.StringFixed(2)),
		slog.String("monthlyEmi", created.MonthlyEmi.StringFixed(2)))

	if s.pub != nil {
		evt := event.LoanCreatedEvent{Timestamp: time.Now(), Payload: NewLoanEventPayload(created)}
		if pubErr := s.pub.PublishLoanCreated(ctx, evt); pubErr != nil {
			logger.ErrorContext(ctx, "Loan created, but FAILED to publish creation event", slog.Any("error", pubErr))
		}
	}
	return created, nil
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID uuid.UUID) (*Loan, error) {
	loan, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, s.translateLookupError(ctx, loanID, err)
	}
	return loan, nil
}

func (s *loanServiceImpl) RecordPayment(ctx context.Context, loanID uuid.UUID, amount Money, kind PaymentKind) (receipt *PaymentReceipt, err error) {
	logger := s.logger.With(slog.String("loanID", loanID.String()))
	logger.InfoContext(ctx, "Recording payment", slog.String("amount", amount.String()), slog.String("kind", string(kind)))

	if kind != PaymentScheduled && kind != PaymentLumpSum {
		monitoring.RecordPayment("failure_invalid")
		return nil, apperrors.NewValidationError("paymentType", fmt.Sprintf("unsupported payment kind %q", kind))
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		monitoring.RecordPayment("failure_internal")
		return nil, fmt.Errorf("%w: could not begin transaction: %w", apperrors.ErrInternalServer, err)
	}

	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "Panic occurred during payment processing", slog.Any("panic", p))
			_ = s.repo.RollbackTx(ctx, tx)
			monitoring.RecordPayment("failure_internal")
			panic(p)
		}
		monitoring.RecordPayment(paymentOutcome(err))
		if err != nil {
			logger.WarnContext(ctx, "Rolling back payment transaction", slog.Any("error", err))
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	loan, err := s.repo.GetLoanForUpdateInTx(ctx, tx, loanID)
	if err != nil {
		return nil, s.translateLookupError(ctx, loanID, err)
	}

	paid, err := s.repo.SumPaymentsInTx(ctx, tx, loanID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not sum payments: %w", apperrors.ErrInternalServer, err)
	}

	if _, err = loan.Reconcile(paid); err != nil {
		s.reportReconciliationFailure(ctx, err)
		return nil, err
	}

	if err = CheckPayment(loan.Terms, paid, amount); err != nil {
		logger.WarnContext(ctx, "Payment rejected", slog.Any("error", err))
		return nil, err
	}

	payment, err := s.repo.AppendPaymentInTx(ctx, tx, &Payment{LoanID: loanID, Amount: amount, Kind: kind})
	if err != nil {
		return nil, fmt.Errorf("%w: could not append payment: %w", apperrors.ErrInternalServer, err)
	}

	after, err := loan.Reconcile(paid.Add(amount))
	if err != nil {
		s.reportReconciliationFailure(ctx, err)
		return nil, err
	}

	paidOff := false
	if after.Status == StatusPaidOff && loan.Status == StatusActive {
		paidOff, err = s.repo.UpdateLoanStatusInTx(ctx, tx, loanID, StatusActive, StatusPaidOff)
		if err != nil {
			return nil, fmt.Errorf("%w: could not update loan status: %w", apperrors.ErrInternalServer, err)
		}
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%w: could not commit transaction: %w", apperrors.ErrInternalServer, err)
	}

	s.invalidate(ctx, loanID)
	monitoring.RecordPaymentAmount(string(kind), amount.InexactFloat64())

	receipt = &PaymentReceipt{
		PaymentID: payment.ID,
		LoanID:    loanID,
		Amount:    payment.Amount,
		Kind:      payment.Kind,
		Balance:   after.Balance,
		EmisLeft:  after.EmisLeft,
		Status:    after.Status,
		CreatedAt: payment.CreatedAt,
	}
	logger.InfoContext(ctx, "Payment recorded",
		slog.String("paymentID", payment.ID.String()),
		slog.String("balance", after.Balance.StringFixed(2)),
		slog.Int64("emisLeft", after.EmisLeft))

	s.publishPaymentRecorded(ctx, receipt)
	if paidOff {
		monitoring.RecordLoanPaidOff()
		s.publishPaidOff(ctx, loan)
	}
	return receipt, nil
}

func paymentOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "failure_invalid"
	case errors.Is(err, apperrors.ErrOverpayment):
		return "failure_overpayment"
	case errors.Is(err, apperrors.ErrNotFound):
		return "failure_not_found"
	case errors.Is(err, apperrors.ErrReconciliation):
		return "failure_reconciliation"
	default:
		return "failure_internal"
	}
}

func (s *loanServiceImpl) GetLedger(ctx context.Context, loanID uuid.UUID) (*LedgerView, error) {
	logger := s.logger.With(slog.String("loanID", loanID.String()))

	cacheable := false
	var version int64
	if s.cache != nil {
		view, ok, err := s.cache.GetLedger(ctx, loanID)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "Ledger cache read failed, loading from store", slog.Any("error", err))
		case ok:
			return view, nil
		}

		// The version is taken before the store read so a payment that
		// commits in between makes the write below a no-op.
		version, err = s.cache.LedgerVersion(ctx, loanID)
		if err != nil {
			logger.WarnContext(ctx, "Ledger cache version unavailable, skipping cache write", slog.Any("error", err))
		} else {
			cacheable = true
		}
	}

	loan, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, s.translateLookupError(ctx, loanID, err)
	}

	payments, err := s.repo.GetPaymentsByLoanID(ctx, loanID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load payments", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to load payments for loan %s: %w", apperrors.ErrInternalServer, loanID, err)
	}

	ledger, err := loan.Reconcile(SumPayments(payments))
	if err != nil {
		s.reportReconciliationFailure(ctx, err)
		return nil, err
	}

	view := &LedgerView{Loan: loan, Ledger: ledger, Transactions: payments}
	if cacheable {
		if err := s.cache.SetLedger(ctx, view, version); err != nil {
			logger.WarnContext(ctx, "Failed to cache ledger", slog.Any("error", err))
		}
	}
	return view, nil
}

func (s *loanServiceImpl) GetCustomerOverview(ctx context.Context, customerID string) (*CustomerOverview, error) {
	logger := s.logger.With(slog.String("customerID", customerID))

	balances, err := s.repo.GetLoanBalancesByCustomerID(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load customer loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to load loans for customer %s: %w", apperrors.ErrInternalServer, customerID, err)
	}
	if len(balances) == 0 {
		logger.WarnContext(ctx, "Customer has no loans")
		return nil, fmt.Errorf("%w: no loans for customer %s", apperrors.ErrNotFound, customerID)
	}

	overview := &CustomerOverview{
		CustomerID: customerID,
		TotalLoans: len(balances),
		Loans:      make([]LoanSummary, 0, len(balances)),
	}
	for _, b := range balances {
		ledger, err := b.Loan.Reconcile(b.AmountPaid)
		if err != nil {
			s.reportReconciliationFailure(ctx, err)
			return nil, err
		}
		overview.TotalInterest = overview.TotalInterest.Add(b.Loan.Interest)
		overview.Loans = append(overview.Loans, LoanSummary{Loan: b.Loan, Ledger: ledger})
	}
	return overview, nil
}

func (s *loanServiceImpl) ReconcileLoan(ctx context.Context, loanID uuid.UUID) (ledger *Ledger, err error) {
	logger := s.logger.With(slog.String("loanID", loanID.String()))

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not begin transaction: %w", apperrors.ErrInternalServer, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	loan, err := s.repo.GetLoanForUpdateInTx(ctx, tx, loanID)
	if err != nil {
		return nil, s.translateLookupError(ctx, loanID, err)
	}

	paid, err := s.repo.SumPaymentsInTx(ctx, tx, loanID)
	if err != nil {
		return nil, fmt.Errorf("%w: could not sum payments: %w", apperrors.ErrInternalServer, err)
	}

	derived, err := loan.Reconcile(paid)
	if err != nil {
		s.reportReconciliationFailure(ctx, err)
		return nil, err
	}

	flipped := false
	if derived.Status == StatusPaidOff && loan.Status == StatusActive {
		flipped, err = s.repo.UpdateLoanStatusInTx(ctx, tx, loanID, StatusActive, StatusPaidOff)
		if err != nil {
			return nil, fmt.Errorf("%w: could not update loan status: %w", apperrors.ErrInternalServer, err)
		}
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: could not commit transaction: %w", apperrors.ErrInternalServer, err)
	}

	if flipped {
		logger.WarnContext(ctx, "Corrected stale ACTIVE status on fully paid loan")
		s.invalidate(ctx, loanID)
		monitoring.RecordLoanPaidOff()
		s.publishPaidOff(ctx, loan)
	}
	return &derived, nil
}

func (s *loanServiceImpl) ListActiveLoanIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.repo.GetActiveLoanIDs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list active loans", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to list active loans: %w", apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

func (s *loanServiceImpl) translateLookupError(ctx context.Context, loanID uuid.UUID, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, pgx.ErrNoRows) {
		s.logger.WarnContext(ctx, "Loan not found", slog.String("loanID", loanID.String()))
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	s.logger.ErrorContext(ctx, "Failed to load loan", slog.String("loanID", loanID.String()), slog.Any("error", err))
	return fmt.Errorf("%w: failed to load loan %s: %w", apperrors.ErrInternalServer, loanID, err)
}

func (s *loanServiceImpl) invalidate(ctx context.Context, loanID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLedger(ctx, loanID); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate cached ledger", slog.String("loanID", loanID.String()), slog.Any("error", err))
	}
}

func (s *loanServiceImpl) reportReconciliationFailure(ctx context.Context, err error) {
	var recErr *apperrors.ReconciliationError
	if !errors.As(err, &recErr) {
		return
	}
	monitoring.RecordReconciliationFailure()
	s.logger.ErrorContext(ctx, "Ledger reconciliation failed",
		slog.String("loanID", recErr.LoanID),
		slog.String("balance", recErr.Balance.StringFixed(2)),
		slog.String("reason", recErr.Reason))

	if s.pub == nil {
		return
	}
	evt := event.ReconciliationFailedEvent{
		Timestamp: time.Now(),
		LoanID:    recErr.LoanID,
		Balance:   recErr.Balance.StringFixed(2),
		Reason:    recErr.Reason,
	}
	if pubErr := s.pub.PublishReconciliationFailed(ctx, evt); pubErr != nil {
		s.logger.ErrorContext(ctx, "Failed to publish reconciliation failure event", slog.Any("error", pubErr))
	}
}

func (s *loanServiceImpl) publishPaymentRecorded(ctx context.Context, r *PaymentReceipt) {
	if s.pub == nil {
		return
	}
	evt := event.PaymentRecordedEvent{
		Timestamp: time.Now(),
		Payload: event.PaymentEventPayload{
			PaymentID: r.PaymentID.String(),
			LoanID:    r.LoanID.String(),
			Amount:    r.Amount.StringFixed(2),
			Kind:      string(r.Kind),
			Balance:   r.Balance.StringFixed(2),
			EmisLeft:  r.EmisLeft,
			Status:    string(r.Status),
		},
	}
	if err := s.pub.PublishPaymentRecorded(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Payment recorded, but FAILED to publish event", slog.Any("error", err))
	}
}

func (s *loanServiceImpl) publishPaidOff(ctx context.Context, loan *Loan) {
	if s.pub == nil {
		return
	}
	evt := event.LoanPaidOffEvent{Timestamp: time.Now(), LoanID: loan.ID.String(), CustomerID: loan.CustomerID}
	if err := s.pub.PublishLoanPaidOff(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish loan paid off event", slog.Any("error", err))
	}
}

func NewLoanEventPayload(l *Loan) event.LoanEventPayload {
	return event.LoanEventPayload{
		LoanID:            l.ID.String(),
		CustomerID:        l.CustomerID,
		Principal:         l.Principal.StringFixed(2),
		AnnualRatePercent: l.AnnualRatePercent.String(),
		PeriodYears:       l.PeriodYears,
		Interest:          l.Interest.StringFixed(2),
		TotalPayable:      l.TotalPayable.StringFixed(2),
		MonthlyEmi:        l.MonthlyEmi.StringFixed(2),
		Status:            string(l.Status),
	}
}
