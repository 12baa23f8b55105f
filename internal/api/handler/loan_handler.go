package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"
)

type LoanHandler struct {
	service         loan.LoanService
	customerService customer.CustomerService
	logger          *slog.Logger
}

func NewLoanHandler(s loan.LoanService, cs customer.CustomerService, l *slog.Logger) *LoanHandler {
	return &LoanHandler{
		service:         s,
		customerService: cs,
		logger:          l.With("component", "LoanHandler"),
	}
}

// CreateLoan handles the creation of a new loan.
//
// @Summary Create a new loan
// @Description Creates a simple-interest loan for a customer. When the customer does not exist yet it is created first, which requires customerName. Money may be sent as a string or a number.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body dto.CreateLoanRequest true "Loan creation request payload"
// @Success 201 {object} dto.LoanResponse "Loan successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/loans [post]
// @Security BearerAuth
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	cust, created, err := h.customerService.EnsureCustomer(r.Context(), req.CustomerID, req.CustomerName)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if created {
		h.logger.InfoContext(r.Context(), "New customer created for loan", "customer_id", cust.CustomerID)
	}

	createdLoan, err := h.service.CreateLoan(r.Context(), cust.CustomerID, *req.Principal, req.PeriodYears, *req.AnnualRatePercent)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewLoanResponse(createdLoan))
}

// GetLoan retrieves the frozen terms and status of a loan.
//
// @Summary Retrieve loan details
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID (UUID)"
// @Success 200 {object} dto.LoanResponse "Loan details successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/loans/{loanID} [get]
// @Security BearerAuth
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	domainLoan, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanResponse(domainLoan))
}

// RecordPayment records an EMI or lump-sum payment.
//
// @Summary Record a loan payment
// @Description Appends a payment to the loan. paymentType is SCHEDULED (alias EMI) or LUMP_SUM. A payment larger than the remaining balance is rejected with the remaining balance in the error.
// @Tags Loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID (UUID)"
// @Param request body dto.RecordPaymentRequest true "Payment request payload"
// @Success 201 {object} dto.PaymentReceiptResponse "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID, request payload, or validation error"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 422 {object} dto.ErrorResponse "Payment exceeds remaining balance"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/loans/{loanID}/payments [post]
// @Security BearerAuth
func (h *LoanHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req dto.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	kind, err := loan.ParsePaymentKind(req.PaymentType)
	if err != nil {
		respondError(w, r, err)
		return
	}

	receipt, err := h.service.RecordPayment(r.Context(), loanID, *req.Amount, kind)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewPaymentReceiptResponse(receipt))
}

// GetLedger returns the derived ledger and the full transaction history.
//
// @Summary Retrieve loan ledger
// @Tags Loans
// @Produce json
// @Param loanID path string true "Loan ID (UUID)"
// @Success 200 {object} dto.LedgerResponse "Ledger"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/loans/{loanID}/ledger [get]
// @Security BearerAuth
func (h *LoanHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	loanID, err := getLoanIDFromURL(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	view, err := h.service.GetLedger(r.Context(), loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLedgerResponse(view))
}
