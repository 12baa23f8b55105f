package api

import (
	"log/slog"
	"net/http"
	"time"

	"loan-ledger/internal/api/handler"
	mw "loan-ledger/internal/api/middleware"
	"loan-ledger/internal/config"
	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/loan"

	_ "loan-ledger/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const apiPrefix = "/api/v1"

func SetupRouter(loanService loan.LoanService, customerService customer.CustomerService, rateLimiter *mw.RateLimiterMiddleware, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, rateLimiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)
	setupAuthRoutes(router, cfg, logger)

	router.Route(apiPrefix, func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		setupLoanRoutes(r, loanService, customerService, logger)
		setupCustomerRoutes(r, customerService, loanService, logger)
	})

	return router
}

func setupMiddleware(router *chi.Mux, rateLimiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupLoanRoutes(r chi.Router, loanService loan.LoanService, customerService customer.CustomerService, logger *slog.Logger) {
	h := handler.NewLoanHandler(loanService, customerService, logger)

	r.Route("/loans", func(r chi.Router) {
		r.Post("/", h.CreateLoan)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", h.GetLoan)
			r.Post("/payments", h.RecordPayment)
			r.Get("/ledger", h.GetLedger)
		})
	})
}

func setupCustomerRoutes(r chi.Router, customerService customer.CustomerService, loanService loan.LoanService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(customerService, loanService, logger)

	r.Route("/customers/{customerID}", func(r chi.Router) {
		r.Get("/", h.GetCustomer)
		r.Get("/overview", h.GetOverview)
	})
}
