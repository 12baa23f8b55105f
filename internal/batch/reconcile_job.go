package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/infrastructure/monitoring"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const defaultWorkers = 8

// ReconcileLedgersJob re-derives the ledger of every ACTIVE loan. Negative
// balances are reported by the loan service; fully paid loans still marked
// ACTIVE are flipped to PAID_OFF.
type ReconcileLedgersJob struct {
	loanService loan.LoanService
	workers     int
	logger      *slog.Logger
}

// SweepResult summarizes one run.
type SweepResult struct {
	Total     int
	Processed int64
	PaidOff   int64
	Failures  int64
	Errors    int64
	Skipped   int64
}

func NewReconcileLedgersJob(loanSvc loan.LoanService, workers int, logger *slog.Logger) *ReconcileLedgersJob {
	if loanSvc == nil || logger == nil {
		panic("ReconcileLedgersJob dependencies cannot be nil")
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &ReconcileLedgersJob{
		loanService: loanSvc,
		workers:     workers,
		logger:      logger.With("job", "ReconcileLedgers"),
	}
}

func (j *ReconcileLedgersJob) Run(ctx context.Context) (SweepResult, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting ledger reconciliation sweep.")

	activeLoanIDs, err := j.loanService.ListActiveLoanIDs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to get active loan IDs, aborting sweep.", slog.Any("error", err))
		monitoring.RecordReconciliationSweep("error", 0)
		return SweepResult{}, fmt.Errorf("cannot run sweep, failed to get active loans: %w", err)
	}

	result := SweepResult{Total: len(activeLoanIDs)}
	if result.Total == 0 {
		j.logger.InfoContext(ctx, "No active loans found to reconcile.")
		monitoring.RecordReconciliationSweep("success", 0)
		return result, nil
	}

	var processed, paidOff, failures, errCount atomic.Int64
	ids := make(chan uuid.UUID)
	var wg sync.WaitGroup

	for w := 0; w < min(j.workers, result.Total); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for loanID := range ids {
				ledger, recErr := j.loanService.ReconcileLoan(ctx, loanID)
				switch {
				case recErr == nil:
					processed.Add(1)
					if ledger != nil && ledger.Status == loan.StatusPaidOff {
						paidOff.Add(1)
					}
				case errors.Is(recErr, apperrors.ErrReconciliation):
					failures.Add(1)
				case errors.Is(recErr, apperrors.ErrNotFound):
					j.logger.WarnContext(ctx, "Loan disappeared during reconciliation", slog.String("loanID", loanID.String()))
				default:
					j.logger.ErrorContext(ctx, "Failed to reconcile loan", slog.String("loanID", loanID.String()), slog.Any("error", recErr))
					errCount.Add(1)
				}
			}
		}()
	}

	dispatched := 0
feed:
	for _, id := range activeLoanIDs {
		select {
		case <-ctx.Done():
			break feed
		case ids <- id:
			dispatched++
		}
	}
	close(ids)
	wg.Wait()

	result.Processed = processed.Load()
	result.PaidOff = paidOff.Load()
	result.Failures = failures.Load()
	result.Errors = errCount.Load()
	result.Skipped = int64(result.Total - dispatched)

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("total_active_loans", result.Total),
		slog.Int64("loans_processed", result.Processed),
		slog.Int64("loans_paid_off", result.PaidOff),
		slog.Int64("reconciliation_failures", result.Failures),
		slog.Int64("errors_encountered", result.Errors),
		slog.Int64("loans_skipped", result.Skipped),
	)

	switch {
	case result.Failures > 0:
		summaryLog.ErrorContext(ctx, "Ledger reconciliation sweep found inconsistent ledgers.")
		monitoring.RecordReconciliationSweep("failed", result.Total)
		return result, fmt.Errorf("%w: %d loans failed reconciliation", apperrors.ErrReconciliation, result.Failures)
	case result.Errors > 0 || result.Skipped > 0:
		summaryLog.WarnContext(ctx, "Ledger reconciliation sweep finished with errors.")
		monitoring.RecordReconciliationSweep("error", result.Total)
		if ctxErr := ctx.Err(); ctxErr != nil && result.Skipped > 0 {
			return result, fmt.Errorf("sweep interrupted: %w", ctxErr)
		}
		return result, fmt.Errorf("sweep completed with %d errors", result.Errors)
	default:
		summaryLog.InfoContext(ctx, "Ledger reconciliation sweep finished successfully.")
		monitoring.RecordReconciliationSweep("success", result.Total)
		return result, nil
	}
}
