package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCustomerHandler() (*CustomerHandler, *MockCustomerService, *MockLoanService) {
	cs := new(MockCustomerService)
	ls := new(MockLoanService)
	return NewCustomerHandler(cs, ls, testLogger), cs, ls
}

func TestNewCustomerHandlerPanics(t *testing.T) {
	assert.Panics(t, func() { NewCustomerHandler(nil, new(MockLoanService), testLogger) })
	assert.Panics(t, func() { NewCustomerHandler(new(MockCustomerService), nil, testLogger) })
	assert.Panics(t, func() { NewCustomerHandler(new(MockCustomerService), new(MockLoanService), nil) })
}

func TestCustomerHandler_GetCustomer(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, cs, _ := setupCustomerHandler()
		cs.On("GetCustomer", mock.Anything, "C1").Return(&customer.Customer{CustomerID: "C1", Name: "Asha"}, nil)

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, newRequest(http.MethodGet, "/", "", map[string]string{"customerID": "C1"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Asha", resp.Name)
	})

	t.Run("not found", func(t *testing.T) {
		h, cs, _ := setupCustomerHandler()
		cs.On("GetCustomer", mock.Anything, "C2").Return(nil, fmt.Errorf("%w: customer C2", apperrors.ErrNotFound))

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, newRequest(http.MethodGet, "/", "", map[string]string{"customerID": "C2"}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		h, _, _ := setupCustomerHandler()

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, newRequest(http.MethodGet, "/", "", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandler_GetOverview(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, _, ls := setupCustomerHandler()
		l := fixtureLoan()
		overview := &loan.CustomerOverview{
			CustomerID:    "C1",
			TotalLoans:    1,
			TotalInterest: l.Interest,
			Loans: []loan.LoanSummary{{Loan: l, Ledger: loan.Ledger{
				AmountPaid: loan.MustParseMoney("5000"),
				Balance:    loan.MustParseMoney("115000"),
				EmisLeft:   23,
				Status:     loan.StatusActive,
			}}},
		}
		ls.On("GetCustomerOverview", mock.Anything, "C1").Return(overview, nil)

		rec := httptest.NewRecorder()
		h.GetOverview(rec, newRequest(http.MethodGet, "/", "", map[string]string{"customerID": "C1"}))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerOverviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.TotalLoans)
		assert.Equal(t, "20000.00", resp.TotalInterest)
		assert.Equal(t, "5000.00", resp.Loans[0].AmountPaid)
		assert.Equal(t, int64(23), resp.Loans[0].EmisLeft)
	})

	t.Run("no loans", func(t *testing.T) {
		h, _, ls := setupCustomerHandler()
		ls.On("GetCustomerOverview", mock.Anything, "C3").Return(nil, apperrors.ErrNotFound)

		rec := httptest.NewRecorder()
		h.GetOverview(rec, newRequest(http.MethodGet, "/", "", map[string]string{"customerID": "C3"}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
