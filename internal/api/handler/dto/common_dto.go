package dto

import "github.com/shopspring/decimal"

const moneyPlaces = 2

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}

type ErrorDetail struct {
	Code             string `json:"code,omitempty"`
	Message          string `json:"message"`
	Field            string `json:"field,omitempty"`
	RemainingBalance string `json:"remainingBalance,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
