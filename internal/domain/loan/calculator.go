package loan

import (
	"math"

	"loan-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const rateScale = 4

var (
	// Column limits of loans.principal/total_payable NUMERIC(14,2) and
	// loans.annual_rate_percent NUMERIC(9,4).
	maxAmount = decimal.RequireFromString("999999999999.99")
	maxRate   = decimal.RequireFromString("99999.9999")
)

// ComputeTerms applies flat simple interest:
//
//	exact        = principal * periodYears * annualRatePercent / 100
//	interest     = round2(exact)
//	totalPayable = principal + interest
//	monthlyEmi   = round2((principal + exact) / (periodYears * 12))
//
// The installment uses the unrounded total.
func ComputeTerms(principal Money, periodYears int, annualRatePercent Money) (Terms, error) {
	if !principal.IsPositive() {
		return Terms{}, apperrors.NewValidationError("principal", "must be greater than zero")
	}
	if !hasCents(principal) {
		return Terms{}, apperrors.NewValidationError("principal", "must have at most two decimal places")
	}
	if principal.GreaterThan(maxAmount) {
		return Terms{}, apperrors.NewValidationError("principal", "must not exceed "+maxAmount.StringFixed(moneyScale))
	}
	if periodYears <= 0 {
		return Terms{}, apperrors.NewValidationError("periodYears", "must be a positive integer")
	}
	if periodYears > math.MaxInt32 {
		return Terms{}, apperrors.NewValidationError("periodYears", "is too large")
	}
	if annualRatePercent.IsNegative() {
		return Terms{}, apperrors.NewValidationError("annualRatePercent", "must not be negative")
	}
	if !annualRatePercent.Equal(annualRatePercent.Truncate(rateScale)) {
		return Terms{}, apperrors.NewValidationError("annualRatePercent", "must have at most four decimal places")
	}
	if annualRatePercent.GreaterThan(maxRate) {
		return Terms{}, apperrors.NewValidationError("annualRatePercent", "must not exceed "+maxRate.StringFixed(rateScale))
	}

	years := decimal.NewFromInt(int64(periodYears))
	exact := principal.Mul(years).Mul(annualRatePercent).Div(hundred)
	interest := Round2(exact)
	total := principal.Add(interest)
	if total.GreaterThan(maxAmount) {
		return Terms{}, apperrors.NewValidationError("principal", "total payable must not exceed "+maxAmount.StringFixed(moneyScale))
	}

	emi := Round2(principal.Add(exact).Div(years.Mul(monthsInYear)))
	if !emi.IsPositive() {
		return Terms{}, apperrors.NewValidationError("principal", "too small to produce a monthly installment")
	}

	return Terms{
		Interest:     interest,
		TotalPayable: total,
		MonthlyEmi:   emi,
	}, nil
}
