package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/infrastructure/monitoring"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	ledgerKeyPrefix   = "ledger:"
	versionKeySuffix  = ":version"
	defaultLedgerTTL  = 5 * time.Minute
	snapshotMoneyPrec = 2
)

type RedisLedgerCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

var _ loan.LedgerCache = (*RedisLedgerCache)(nil)

func NewRedisLedgerCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisLedgerCache {
	if ttl <= 0 {
		ttl = defaultLedgerTTL
	}
	return &RedisLedgerCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "RedisLedgerCache"),
	}
}

// setIfCurrent writes the snapshot only while the version key still holds
// the version the caller read. A missing version key counts as "0".
var setIfCurrent = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if (current or "0") ~= ARGV[2] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

func ledgerKey(loanID uuid.UUID) string {
	return ledgerKeyPrefix + loanID.String()
}

func versionKey(loanID uuid.UUID) string {
	return ledgerKey(loanID) + versionKeySuffix
}

func (c *RedisLedgerCache) GetLedger(ctx context.Context, loanID uuid.UUID) (*loan.LedgerView, bool, error) {
	raw, err := c.client.Get(ctx, ledgerKey(loanID)).Result()
	if errors.Is(err, redis.Nil) {
		monitoring.RecordCacheLookup(false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get ledger %s: %w", loanID, err)
	}

	view, err := decodeSnapshot([]byte(raw))
	if err != nil {
		c.logger.WarnContext(ctx, "Discarding unreadable ledger snapshot", "loan_id", loanID, "error", err)
		monitoring.RecordCacheLookup(false)
		return nil, false, nil
	}

	monitoring.RecordCacheLookup(true)
	return view, true, nil
}

func (c *RedisLedgerCache) LedgerVersion(ctx context.Context, loanID uuid.UUID) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(loanID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get ledger version %s: %w", loanID, err)
	}
	return version, nil
}

func (c *RedisLedgerCache) SetLedger(ctx context.Context, view *loan.LedgerView, version int64) error {
	if view == nil || view.Loan == nil {
		return nil
	}
	data, err := encodeSnapshot(view)
	if err != nil {
		return fmt.Errorf("encode ledger snapshot: %w", err)
	}

	keys := []string{ledgerKey(view.Loan.ID), versionKey(view.Loan.ID)}
	stored, err := setIfCurrent.Run(ctx, c.client, keys,
		string(data), strconv.FormatInt(version, 10), strconv.FormatInt(c.ttl.Milliseconds(), 10)).Int()
	if err != nil {
		return fmt.Errorf("redis set ledger %s: %w", view.Loan.ID, err)
	}
	if stored == 0 {
		c.logger.DebugContext(ctx, "Ledger changed while loading, snapshot not cached", "loan_id", view.Loan.ID, "version", version)
	}
	return nil
}

// InvalidateLedger bumps the version before deleting so an in-flight
// SetLedger holding the old version cannot resurrect a stale snapshot.
func (c *RedisLedgerCache) InvalidateLedger(ctx context.Context, loanID uuid.UUID) error {
	var errs []error
	if err := c.client.Incr(ctx, versionKey(loanID)).Err(); err != nil {
		errs = append(errs, fmt.Errorf("redis incr ledger version %s: %w", loanID, err))
	}
	if err := c.client.Del(ctx, ledgerKey(loanID)).Err(); err != nil {
		errs = append(errs, fmt.Errorf("redis del ledger %s: %w", loanID, err))
	}
	return errors.Join(errs...)
}

type loanSnapshot struct {
	ID                uuid.UUID `json:"id"`
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

type paymentSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Amount    string    `json:"amount"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

type ledgerSnapshot struct {
	Loan         loanSnapshot      `json:"loan"`
	AmountPaid   string            `json:"amountPaid"`
	Balance      string            `json:"balance"`
	EmisLeft     int64             `json:"emisLeft"`
	Status       string            `json:"status"`
	Transactions []paymentSnapshot `json:"transactions"`
}

func encodeSnapshot(view *loan.LedgerView) ([]byte, error) {
	l := view.Loan
	snap := ledgerSnapshot{
		Loan: loanSnapshot{
			ID:                l.ID,
			CustomerID:        l.CustomerID,
			Principal:         l.Principal.StringFixed(snapshotMoneyPrec),
			AnnualRatePercent: l.AnnualRatePercent.String(),
			PeriodYears:       l.PeriodYears,
			Interest:          l.Interest.StringFixed(snapshotMoneyPrec),
			TotalPayable:      l.TotalPayable.StringFixed(snapshotMoneyPrec),
			MonthlyEmi:        l.MonthlyEmi.StringFixed(snapshotMoneyPrec),
			Status:            string(l.Status),
			CreatedAt:         l.CreatedAt,
			UpdatedAt:         l.UpdatedAt,
		},
		AmountPaid:   view.Ledger.AmountPaid.StringFixed(snapshotMoneyPrec),
		Balance:      view.Ledger.Balance.StringFixed(snapshotMoneyPrec),
		EmisLeft:     view.Ledger.EmisLeft,
		Status:       string(view.Ledger.Status),
		Transactions: make([]paymentSnapshot, 0, len(view.Transactions)),
	}
	for _, p := range view.Transactions {
		snap.Transactions = append(snap.Transactions, paymentSnapshot{
			ID:        p.ID,
			Amount:    p.Amount.StringFixed(snapshotMoneyPrec),
			Kind:      string(p.Kind),
			CreatedAt: p.CreatedAt,
		})
	}
	return json.Marshal(snap)
}

func decodeSnapshot(data []byte) (*loan.LedgerView, error) {
	var snap ledgerSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	var parseErr error
	parse := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil && parseErr == nil {
			parseErr = err
		}
		return d
	}

	view := &loan.LedgerView{
		Loan: &loan.Loan{
			ID:                snap.Loan.ID,
			CustomerID:        snap.Loan.CustomerID,
			Principal:         parse(snap.Loan.Principal),
			AnnualRatePercent: parse(snap.Loan.AnnualRatePercent),
			PeriodYears:       snap.Loan.PeriodYears,
			Terms: loan.Terms{
				Interest:     parse(snap.Loan.Interest),
				TotalPayable: parse(snap.Loan.TotalPayable),
				MonthlyEmi:   parse(snap.Loan.MonthlyEmi),
			},
			Status:    loan.LoanStatus(snap.Loan.Status),
			CreatedAt: snap.Loan.CreatedAt,
			UpdatedAt: snap.Loan.UpdatedAt,
		},
		Ledger: loan.Ledger{
			AmountPaid: parse(snap.AmountPaid),
			Balance:    parse(snap.Balance),
			EmisLeft:   snap.EmisLeft,
			Status:     loan.LoanStatus(snap.Status),
		},
		Transactions: make([]loan.Payment, 0, len(snap.Transactions)),
	}
	for _, p := range snap.Transactions {
		view.Transactions = append(view.Transactions, loan.Payment{
			ID:        p.ID,
			LoanID:    snap.Loan.ID,
			Amount:    parse(p.Amount),
			Kind:      loan.PaymentKind(p.Kind),
			CreatedAt: p.CreatedAt,
		})
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return view, nil
}
