package dto

import (
	"strings"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest accepts money either as a JSON string ("10000.50") or
// as a JSON number.
type CreateLoanRequest struct {
	CustomerID        string           `json:"customerId"`
	CustomerName      string           `json:"customerName,omitempty"`
	Principal         *decimal.Decimal `json:"principal"`
	PeriodYears       int              `json:"periodYears"`
	AnnualRatePercent *decimal.Decimal `json:"annualRatePercent"`
}

func (r *CreateLoanRequest) Validate() error {
	if strings.TrimSpace(r.CustomerID) == "" {
		return apperrors.NewValidationError("customerId", "is required")
	}
	if r.Principal == nil {
		return apperrors.NewValidationError("principal", "is required")
	}
	if r.PeriodYears == 0 {
		return apperrors.NewValidationError("periodYears", "is required")
	}
	if r.AnnualRatePercent == nil {
		return apperrors.NewValidationError("annualRatePercent", "is required")
	}
	return nil
}

type RecordPaymentRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	PaymentType string           `json:"paymentType"`
}

func (r *RecordPaymentRequest) Validate() error {
	if r.Amount == nil {
		return apperrors.NewValidationError("amount", "is required")
	}
	if strings.TrimSpace(r.PaymentType) == "" {
		return apperrors.NewValidationError("paymentType", "is required")
	}
	return nil
}

type LoanResponse struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customerId"`
	Principal         string    `json:"principal"`
	AnnualRatePercent string    `json:"annualRatePercent"`
	PeriodYears       int       `json:"periodYears"`
	Interest          string    `json:"interest"`
	TotalPayable      string    `json:"totalPayable"`
	MonthlyEmi        string    `json:"monthlyEmi"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type PaymentReceiptResponse struct {
	PaymentID string    `json:"paymentId"`
	LoanID    string    `json:"loanId"`
	Amount    string    `json:"amount"`
	Type      string    `json:"paymentType"`
	Balance   string    `json:"remainingBalance"`
	EmisLeft  int64     `json:"emisLeft"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Message   string    `json:"message"`
}

type TransactionResponse struct {
	TransactionID string    `json:"transactionId"`
	Date          time.Time `json:"date"`
	Amount        string    `json:"amount"`
	Type          string    `json:"type"`
}

type LedgerResponse struct {
	LoanID       string                `json:"loanId"`
	CustomerID   string                `json:"customerId"`
	Principal    string                `json:"principal"`
	TotalPayable string                `json:"totalPayable"`
	MonthlyEmi   string                `json:"monthlyEmi"`
	AmountPaid   string                `json:"amountPaid"`
	Balance      string                `json:"balanceAmount"`
	EmisLeft     int64                 `json:"emisLeft"`
	Status       string                `json:"status"`
	Transactions []TransactionResponse `json:"transactions"`
}

type LoanOverviewResponse struct {
	LoanID        string `json:"loanId"`
	Principal     string `json:"principal"`
	TotalPayable  string `json:"totalPayable"`
	TotalInterest string `json:"totalInterest"`
	MonthlyEmi    string `json:"emiAmount"`
	AmountPaid    string `json:"amountPaid"`
	Balance       string `json:"balanceAmount"`
	EmisLeft      int64  `json:"emisLeft"`
	Status        string `json:"status"`
}

type CustomerOverviewResponse struct {
	CustomerID    string                 `json:"customerId"`
	TotalLoans    int                    `json:"totalLoans"`
	TotalInterest string                 `json:"totalInterest"`
	Loans         []LoanOverviewResponse `json:"loans"`
}

func NewLoanResponse(l *loan.Loan) LoanResponse {
	return LoanResponse{
		ID:                l.ID.String(),
		CustomerID:        l.CustomerID,
		Principal:         formatMoney(l.Principal),
		AnnualRatePercent: l.AnnualRatePercent.String(),
		PeriodYears:       l.PeriodYears,
		Interest:          formatMoney(l.Interest),
		TotalPayable:      formatMoney(l.TotalPayable),
		MonthlyEmi:        formatMoney(l.MonthlyEmi),
		Status:            string(l.Status),
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func NewPaymentReceiptResponse(r *loan.PaymentReceipt) PaymentReceiptResponse {
	return PaymentReceiptResponse{
		PaymentID: r.PaymentID.String(),
		LoanID:    r.LoanID.String(),
		Amount:    formatMoney(r.Amount),
		Type:      string(r.Kind),
		Balance:   formatMoney(r.Balance),
		EmisLeft:  r.EmisLeft,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		Message:   "Payment recorded successfully.",
	}
}

func NewLedgerResponse(v *loan.LedgerView) LedgerResponse {
	resp := LedgerResponse{
		LoanID:       v.Loan.ID.String(),
		CustomerID:   v.Loan.CustomerID,
		Principal:    formatMoney(v.Loan.Principal),
		TotalPayable: formatMoney(v.Loan.TotalPayable),
		MonthlyEmi:   formatMoney(v.Loan.MonthlyEmi),
		AmountPaid:   formatMoney(v.Ledger.AmountPaid),
		Balance:      formatMoney(v.Ledger.Balance),
		EmisLeft:     v.Ledger.EmisLeft,
		Status:       string(v.Ledger.Status),
		Transactions: make([]TransactionResponse, 0, len(v.Transactions)),
	}
	for _, p := range v.Transactions {
		resp.Transactions = append(resp.Transactions, TransactionResponse{
			TransactionID: p.ID.String(),
			Date:          p.CreatedAt,
			Amount:        formatMoney(p.Amount),
			Type:          string(p.Kind),
		})
	}
	return resp
}

func NewCustomerOverviewResponse(o *loan.CustomerOverview) CustomerOverviewResponse {
	resp := CustomerOverviewResponse{
		CustomerID:    o.CustomerID,
		TotalLoans:    o.TotalLoans,
		TotalInterest: formatMoney(o.TotalInterest),
		Loans:         make([]LoanOverviewResponse, 0, len(o.Loans)),
	}
	for _, s := range o.Loans {
		resp.Loans = append(resp.Loans, LoanOverviewResponse{
			LoanID:        s.Loan.ID.String(),
			Principal:     formatMoney(s.Loan.Principal),
			TotalPayable:  formatMoney(s.Loan.TotalPayable),
			TotalInterest: formatMoney(s.Loan.Interest),
			MonthlyEmi:    formatMoney(s.Loan.MonthlyEmi),
			AmountPaid:    formatMoney(s.Ledger.AmountPaid),
			Balance:       formatMoney(s.Ledger.Balance),
			EmisLeft:      s.Ledger.EmisLeft,
			Status:        string(s.Ledger.Status),
		})
	}
	return resp
}
