package loan

import (
	"github.com/shopspring/decimal"
)

// Money is a currency amount in the single implicit currency.
type Money = decimal.Decimal

const moneyScale = 2

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// Round2 rounds to cents, half away from zero.
func Round2(m Money) Money {
	return m.Round(moneyScale)
}

// hasCents reports whether m needs no more than two fractional digits.
func hasCents(m Money) bool {
	return m.Equal(m.Truncate(moneyScale))
}

// MustParseMoney parses a decimal literal and panics when it is malformed.
// It is meant for constants and fixtures, never for request input.
func MustParseMoney(s string) Money {
	return decimal.RequireFromString(s)
}
