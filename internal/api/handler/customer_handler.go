package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"
)

type CustomerHandler struct {
	service     customer.CustomerService
	loanService loan.LoanService
	logger      *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, ls loan.LoanService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if ls == nil {
		panic("loan service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service:     s,
		loanService: ls,
		logger:      l.With("component", "CustomerHandler"),
	}
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Retrieve customer details
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	domainCustomer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logLookupFailure(r, "Service failed to get customer", err)
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(domainCustomer))
}

// GetOverview handles GET /customers/{customerID}/overview
// @Summary Customer loan overview
// @Description Lists every loan of the customer with amount paid, balance and EMIs left. Returns 404 when the customer has no loans.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerOverviewResponse "Overview"
// @Failure 404 {object} dto.ErrorResponse "Customer not found or has no loans"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/customers/{customerID}/overview [get]
// @Security BearerAuth
func (h *CustomerHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	overview, err := h.loanService.GetCustomerOverview(r.Context(), customerID)
	if err != nil {
		h.logLookupFailure(r, "Service failed to build customer overview", err)
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerOverviewResponse(overview))
}

func (h *CustomerHandler) logLookupFailure(r *http.Request, msg string, err error) {
	level := slog.LevelWarn
	if !errors.Is(err, apperrors.ErrNotFound) {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, msg, slog.Any("error", err))
}
