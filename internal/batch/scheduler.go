package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loan-ledger/internal/config"

	"github.com/robfig/cron/v3"
)

const (
	defaultReconciliationSchedule = "0 3 * * *"
	defaultReconciliationTimeout  = 30 * time.Minute
)

// NewScheduler registers the reconciliation sweep on a new cron scheduler.
// The scheduler is returned unstarted.
func NewScheduler(cfg config.BatchConfig, job *ReconcileLedgersJob, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	if !cfg.ReconciliationEnabled {
		logger.Info("Ledger reconciliation sweep disabled via configuration.")
		return c, nil
	}

	scheduleSpec := cfg.ReconciliationSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultReconciliationSchedule
		logger.Warn("Reconciliation schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.ReconciliationTimeout
	if jobTimeout <= 0 {
		jobTimeout = defaultReconciliationTimeout
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		runWithTimeout(job, jobTimeout, logger)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reconciliation sweep %q: %w", scheduleSpec, err)
	}

	logger.Info("Scheduled ledger reconciliation sweep", "schedule", scheduleSpec, "timeout", jobTimeout, "job_id", jobID)
	return c, nil
}

func runWithTimeout(job *ReconcileLedgersJob, timeout time.Duration, logger *slog.Logger) {
	jobLogger := logger.With("job_name", "ReconcileLedgers")
	jobLogger.Info("Cron triggered: Running ledger reconciliation sweep.")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := job.Run(ctx); err != nil {
		jobLogger.Error("Ledger reconciliation sweep finished with error", slog.Any("error", err))
	}
}
