package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var _ loan.Repository = (*LoanRepository)(nil)

const loanColumns = `id, customer_id, principal, annual_rate_percent, period_years, interest, total_payable, monthly_emi, status, created_at, updated_at`

const (
	insertLoanSQL = `
        INSERT INTO loans (id, customer_id, principal, annual_rate_percent, period_years, interest, total_payable, monthly_emi, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING created_at, updated_at`

	selectLoanByIDSQL = `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	selectLoanForUpdateSQL = `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`

	selectPaymentsByLoanSQL = `
        SELECT id, loan_id, amount, kind, created_at
        FROM payments
        WHERE loan_id = $1
        ORDER BY created_at ASC, seq ASC`

	sumPaymentsSQL = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE loan_id = $1`

	insertPaymentSQL = `
        INSERT INTO payments (id, loan_id, amount, kind, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING created_at`

	updateLoanStatusSQL = `UPDATE loans SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	selectLoanBalancesByCustomerSQL = `
        SELECT l.id, l.customer_id, l.principal, l.annual_rate_percent, l.period_years, l.interest,
               l.total_payable, l.monthly_emi, l.status, l.created_at, l.updated_at,
               COALESCE(SUM(p.amount), 0) AS amount_paid
        FROM loans l
        LEFT JOIN payments p ON p.loan_id = l.id
        WHERE l.customer_id = $1
        GROUP BY l.id
        ORDER BY l.created_at ASC`

	selectActiveLoanIDsSQL = `SELECT id FROM loans WHERE status = $1 ORDER BY created_at`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) CreateLoan(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error) {
	created := *newLoan
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}

	start := time.Now()
	err := r.db.QueryRow(ctx, insertLoanSQL,
		created.ID, created.CustomerID, created.Principal, created.AnnualRatePercent, created.PeriodYears,
		created.Interest, created.TotalPayable, created.MonthlyEmi, string(created.Status),
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	observe("CreateLoan", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "customer_id", created.CustomerID, "error", err)
		return nil, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", created.ID)
	return &created, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	start := time.Now()
	l, err := scanLoan(r.db.QueryRow(ctx, selectLoanByIDSQL, loanID))
	observe("GetLoanByID", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return l, nil
}

func (r *LoanRepository) GetLoanForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID) (*loan.Loan, error) {
	start := time.Now()
	l, err := scanLoan(tx.QueryRow(ctx, selectLoanForUpdateSQL, loanID))
	observe("GetLoanForUpdateInTx", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		r.logger.ErrorContext(ctx, "Failed to lock loan", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return l, nil
}

func (r *LoanRepository) GetPaymentsByLoanID(ctx context.Context, loanID uuid.UUID) ([]loan.Payment, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, selectPaymentsByLoanSQL, loanID)
	if err != nil {
		observe("GetPaymentsByLoanID", start, err)
		r.logger.ErrorContext(ctx, "Failed to query payments", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments := make([]loan.Payment, 0)
	for rows.Next() {
		var (
			p    loan.Payment
			kind string
		)
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &kind, &p.CreatedAt); err != nil {
			observe("GetPaymentsByLoanID", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan payment row", "loan_id", loanID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		p.Kind = loan.PaymentKind(kind)
		payments = append(payments, p)
	}
	err = rows.Err()
	observe("GetPaymentsByLoanID", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating payment rows", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return payments, nil
}

func (r *LoanRepository) SumPaymentsInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID) (loan.Money, error) {
	start := time.Now()
	var paid decimal.Decimal
	err := tx.QueryRow(ctx, sumPaymentsSQL, loanID).Scan(&paid)
	observe("SumPaymentsInTx", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to sum payments", "loan_id", loanID, "error", err)
		return decimal.Zero, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return paid, nil
}

func (r *LoanRepository) AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment *loan.Payment) (*loan.Payment, error) {
	saved := *payment
	if saved.ID == uuid.Nil {
		saved.ID = uuid.New()
	}

	start := time.Now()
	err := tx.QueryRow(ctx, insertPaymentSQL, saved.ID, saved.LoanID, saved.Amount, string(saved.Kind)).Scan(&saved.CreatedAt)
	observe("AppendPaymentInTx", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert payment", "loan_id", saved.LoanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return &saved, nil
}

func (r *LoanRepository) UpdateLoanStatusInTx(ctx context.Context, tx pgx.Tx, loanID uuid.UUID, from, to loan.LoanStatus) (bool, error) {
	start := time.Now()
	cmdTag, err := tx.Exec(ctx, updateLoanStatusSQL, string(to), loanID, string(from))
	observe("UpdateLoanStatusInTx", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update loan status", "loan_id", loanID, "error", err)
		return false, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Loan status already changed", "loan_id", loanID, "from", from, "to", to)
		return false, nil
	}
	return true, nil
}

func (r *LoanRepository) GetLoanBalancesByCustomerID(ctx context.Context, customerID string) ([]loan.LoanBalance, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, selectLoanBalancesByCustomerSQL, customerID)
	if err != nil {
		observe("GetLoanBalancesByCustomerID", start, err)
		r.logger.ErrorContext(ctx, "Failed to query customer loans", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	balances := make([]loan.LoanBalance, 0)
	for rows.Next() {
		var (
			l      loan.Loan
			status string
			paid   decimal.Decimal
		)
		err := rows.Scan(&l.ID, &l.CustomerID, &l.Principal, &l.AnnualRatePercent, &l.PeriodYears, &l.Interest,
			&l.TotalPayable, &l.MonthlyEmi, &status, &l.CreatedAt, &l.UpdatedAt, &paid)
		if err != nil {
			observe("GetLoanBalancesByCustomerID", start, err)
			r.logger.ErrorContext(ctx, "Failed to scan customer loan row", "customer_id", customerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		l.Status = loan.LoanStatus(status)
		balances = append(balances, loan.LoanBalance{Loan: &l, AmountPaid: paid})
	}
	err = rows.Err()
	observe("GetLoanBalancesByCustomerID", start, err)
	if err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return balances, nil
}

func (r *LoanRepository) GetActiveLoanIDs(ctx context.Context) ([]uuid.UUID, error) {
	logCtx := r.logger.With(slog.String("operation", "GetActiveLoanIDs"))
	logCtx.DebugContext(ctx, "Attempting to get all active loan IDs")

	rows, err := r.db.Query(ctx, selectActiveLoanIDsSQL, string(loan.StatusActive))
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query active loan IDs", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan loan ID", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating loan ID rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Retrieved active loan IDs", "count", len(ids))
	return ids, nil
}

func scanLoan(row rowScanner) (*loan.Loan, error) {
	var (
		l      loan.Loan
		status string
	)
	err := row.Scan(&l.ID, &l.CustomerID, &l.Principal, &l.AnnualRatePercent, &l.PeriodYears, &l.Interest,
		&l.TotalPayable, &l.MonthlyEmi, &status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Status = loan.LoanStatus(status)
	return &l, nil
}
