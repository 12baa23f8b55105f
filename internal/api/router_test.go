package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	mw "loan-ledger/internal/api/middleware"
	"loan-ledger/internal/config"
	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoanService struct {
	loan.LoanService
	lookups []uuid.UUID
}

func (s *stubLoanService) GetLoan(_ context.Context, loanID uuid.UUID) (*loan.Loan, error) {
	s.lookups = append(s.lookups, loanID)
	return nil, apperrors.ErrNotFound
}

func (s *stubLoanService) GetCustomerOverview(_ context.Context, customerID string) (*loan.CustomerOverview, error) {
	return &loan.CustomerOverview{CustomerID: customerID}, nil
}

type stubCustomerService struct {
	customer.CustomerService
}

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *stubLoanService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ls := &stubLoanService{}
	return SetupRouter(ls, &stubCustomerService{}, nil, cfg, logger), ls
}

func TestRouterAmbientEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, &config.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
}

func TestRouterRoutesLoanRequests(t *testing.T) {
	router, ls := newTestRouter(t, &config.Config{})
	id := uuid.New()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/loans/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, ls.lookups)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers/C1/overview", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterEnforcesAuthWhenEnabled(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Auth: config.AuthConfig{Enabled: true, JWTSecret: "s3cret"}}}
	router, ls := newTestRouter(t, cfg)
	target := "/api/v1/loans/" + uuid.NewString()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, ls.lookups)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"username":"teller"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var token struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", token.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, ls.lookups, 1)
}

func TestRouterAppliesRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := mw.NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1}, nil, logger)
	defer limiter.Close()
	router := SetupRouter(&stubLoanService{}, &stubCustomerService{}, limiter, &config.Config{}, logger)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
