package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type CacheMetrics struct {
	Lookups *prometheus.CounterVec
}

type BusinessMetrics struct {
	LoansCreatedTotal         prometheus.Counter
	CustomersCreatedTotal     prometheus.Counter
	PaymentsTotal             *prometheus.CounterVec
	PaymentAmountTotal        *prometheus.CounterVec
	LoansPaidOffTotal         prometheus.Counter
	ReconciliationFailures    prometheus.Counter
	ReconciliationSweepsTotal *prometheus.CounterVec
	ReconciliationSweepLoans  prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_ledger_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Cache = CacheMetrics{
		Lookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_ledger_cache_lookups_total",
				Help: "Ledger cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	Business = BusinessMetrics{
		LoansCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_ledger_loans_created_total",
				Help: "Total number of loans created.",
			},
		),
		CustomersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_ledger_customers_created_total",
				Help: "Total number of customers created.",
			},
		),
		PaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_ledger_payments_total",
				Help: "Payment attempts by outcome.",
			},
			[]string{"status"},
		),
		PaymentAmountTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_ledger_payment_amount_total",
				Help: "Sum of accepted payment amounts by kind.",
			},
			[]string{"kind"},
		),
		LoansPaidOffTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_ledger_loans_paid_off_total",
				Help: "Total number of loans that reached a zero balance.",
			},
		),
		ReconciliationFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_reconciliation_failures_total",
				Help: "Ledgers whose derived state violated an invariant.",
			},
		),
		ReconciliationSweepsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_ledger_reconciliation_sweeps_total",
				Help: "Reconciliation sweep runs by outcome.",
			},
			[]string{"status"},
		),
		ReconciliationSweepLoans: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loan_ledger_reconciliation_sweep_loans",
				Help: "Number of loans checked by the last reconciliation sweep.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCacheLookup(hit bool) {
	if hit {
		Cache.Lookups.WithLabelValues("hit").Inc()
		return
	}
	Cache.Lookups.WithLabelValues("miss").Inc()
}

func RecordLoanCreated() {
	Business.LoansCreatedTotal.Inc()
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordPayment(status string) {
	Business.PaymentsTotal.WithLabelValues(status).Inc()
}

func RecordPaymentAmount(kind string, amount float64) {
	Business.PaymentAmountTotal.WithLabelValues(kind).Add(amount)
}

func RecordLoanPaidOff() {
	Business.LoansPaidOffTotal.Inc()
}

func RecordReconciliationFailure() {
	Business.ReconciliationFailures.Inc()
}

func RecordReconciliationSweep(status string, loans int) {
	Business.ReconciliationSweepsTotal.WithLabelValues(status).Inc()
	Business.ReconciliationSweepLoans.Set(float64(loans))
}
