package loan

import (
	"errors"

	"loan-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// Evaluate folds a loan's payments into its ledger. The fold is order
// independent and deterministic.
func Evaluate(terms Terms, payments []Payment) (Ledger, error) {
	return EvaluatePaid(terms, SumPayments(payments))
}

func SumPayments(payments []Payment) Money {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// EvaluatePaid derives the ledger from an already summed amount. A negative
// balance is reported, never clamped.
func EvaluatePaid(terms Terms, amountPaid Money) (Ledger, error) {
	balance := terms.TotalPayable.Sub(amountPaid)
	if balance.IsNegative() {
		return Ledger{}, &apperrors.ReconciliationError{
			Balance: balance,
			Reason:  "payments exceed total payable",
		}
	}

	ledger := Ledger{
		AmountPaid: amountPaid,
		Balance:    balance,
		Status:     StatusActive,
	}
	if balance.IsZero() {
		ledger.Status = StatusPaidOff
		return ledger, nil
	}

	ledger.EmisLeft = emisLeft(balance, terms.MonthlyEmi)
	return ledger, nil
}

// emisLeft is ceil(balance / emi) computed on exact cents.
func emisLeft(balance, emi Money) int64 {
	if !emi.IsPositive() {
		return 0
	}
	q, r := balance.QuoRem(emi, 0)
	n := q.IntPart()
	if !r.IsZero() {
		n++
	}
	return n
}

// CheckPayment is the accept-payment rule: amount must be a positive cent
// value and must not push the amount paid past the total payable.
func CheckPayment(terms Terms, amountPaid, amount Money) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount", "must be greater than zero")
	}
	if !hasCents(amount) {
		return apperrors.NewValidationError("amount", "must have at most two decimal places")
	}

	remaining := terms.TotalPayable.Sub(amountPaid)
	if amount.GreaterThan(remaining) {
		return &apperrors.OverpaymentError{Amount: amount, Remaining: remaining}
	}
	return nil
}

// Reconcile evaluates the loan for the given amount paid and checks the
// stored status against the derived one. A loan stored as PAID_OFF with an
// outstanding balance is inconsistent; a stored ACTIVE status at zero
// balance is only stale and is left for the caller to flip.
func (l *Loan) Reconcile(amountPaid Money) (Ledger, error) {
	ledger, err := EvaluatePaid(l.Terms, amountPaid)
	if err != nil {
		var recErr *apperrors.ReconciliationError
		if errors.As(err, &recErr) {
			recErr.LoanID = l.ID.String()
		}
		return Ledger{}, err
	}

	if l.Status == StatusPaidOff && ledger.Status != StatusPaidOff {
		return Ledger{}, &apperrors.ReconciliationError{
			LoanID:  l.ID.String(),
			Balance: ledger.Balance,
			Reason:  "stored status PAID_OFF with outstanding balance",
		}
	}
	return ledger, nil
}
