package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
)

// LedgerConfig holds optional ledger engine settings.
type LedgerConfig struct {
	Publisher    EventPublisher
	IDGen        IDGenerator
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
	CascadeLimit int // months recomputed per cascade; DefaultCascadeLimit when <= 0
}

// LedgerUseCase maintains the chain of monthly balance snapshots of every
// wallet. Snapshots are materialized lazily from the previous month's
// closing balance, recomputed from transactions, and kept consistent by
// cascading recomputation into already materialized later months.
//
// Public methods take the per-wallet lock. The unexported variants assume
// the caller holds it.
type LedgerUseCase struct {
	balanceRepo  MonthlyBalanceRepository
	txRepo       TransactionRepository
	locker       WalletLocker
	publisher    EventPublisher
	idGen        IDGenerator
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	cascadeLimit int
	now          func() time.Time
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	balanceRepo MonthlyBalanceRepository,
	txRepo TransactionRepository,
	locker WalletLocker,
	cfg LedgerConfig,
) *LedgerUseCase {
	limit := cfg.CascadeLimit
	if limit <= 0 {
		limit = DefaultCascadeLimit
	}

	return &LedgerUseCase{
		balanceRepo:  balanceRepo,
		txRepo:       txRepo,
		locker:       locker,
		publisher:    cfg.Publisher,
		idGen:        cfg.IDGen,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger.With().Str("component", "ledger").Logger(),
		cascadeLimit: limit,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CascadeLimit returns the configured cascade bound.
func (uc *LedgerUseCase) CascadeLimit() int {
	return uc.cascadeLimit
}

// CascadeResult describes one forward cascade.
type CascadeResult struct {
	From         domain.MonthKey
	Through      domain.MonthKey // last month recomputed
	Last         *domain.MonthlyBalance
	Recomputed   int
	LimitReached bool
}

// Err returns domain.ErrCascadeLimitReached when the bound stopped the
// cascade before the end of the materialized chain.
func (r CascadeResult) Err() error {
	if r.LimitReached {
		return domain.ErrCascadeLimitReached
	}
	return nil
}

// LedgerSync reports the outcome of bringing a wallet's monthly chain up to
// date. A stale sync means the triggering write is committed but some
// snapshots still reflect the old figures until the next recompute.
type LedgerSync struct {
	Err                 error
	Balance             *domain.MonthlyBalance
	WalletID            string
	Month               domain.MonthKey
	MonthsCascaded      int
	CascadeLimitReached bool
	Stale               bool
}

// EnsureMonth returns the snapshot of the month containing date, creating it
// from the previous month's closing balance when absent. Existing snapshots
// are returned unchanged.
func (uc *LedgerUseCase) EnsureMonth(ctx context.Context, walletID string, date time.Time) (*domain.MonthlyBalance, error) {
	month := domain.MonthOf(date)

	existing, err := uc.balanceRepo.Find(ctx, walletID, month)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrMonthlyBalanceNotFound) {
		return nil, err
	}

	// Creation reads the previous closing balance, so it must not interleave
	// with a cascade rewriting that balance.
	unlock, err := uc.lock(ctx, walletID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.ensureMonth(ctx, walletID, month)
}

// Recompute rebuilds the snapshot of month from the previous month's
// closing balance and the month's transactions.
func (uc *LedgerUseCase) Recompute(ctx context.Context, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	unlock, err := uc.lock(ctx, walletID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.recompute(ctx, walletID, month)
}

// Cascade recomputes month and every consecutive, already materialized month
// after it, up to the cascade limit. It never creates snapshots.
func (uc *LedgerUseCase) Cascade(ctx context.Context, walletID string, from domain.MonthKey) (CascadeResult, error) {
	unlock, err := uc.lock(ctx, walletID)
	if err != nil {
		return CascadeResult{From: from}, err
	}
	defer unlock()

	return uc.cascade(ctx, walletID, from)
}

// LatestSnapshot returns the most recent materialized snapshot at or before
// the month containing asOf.
func (uc *LedgerUseCase) LatestSnapshot(ctx context.Context, walletID string, asOf time.Time) (*domain.MonthlyBalance, error) {
	return uc.balanceRepo.FindLatest(ctx, walletID, domain.MonthOf(asOf))
}

// Sync runs the post-write protocol for a transaction dated date: ensure the
// month exists, recompute it and cascade forward, under the wallet lock.
// Failures never undo the write; they are reported as a stale sync.
func (uc *LedgerUseCase) Sync(ctx context.Context, walletID string, date time.Time) *LedgerSync {
	result, err := uc.Resync(ctx, walletID, domain.MonthOf(date))
	if err != nil {
		result.Stale = true
		result.Err = err

		uc.logger.Error().
			Err(err).
			Str("wallet_id", walletID).
			Str("month", result.Month.String()).
			Msg("ledger sync failed, balances stale until next recompute")
	}

	uc.publishSynced(ctx, result)

	return result
}

// Resync is Sync for an explicit month that surfaces failures to the caller.
func (uc *LedgerUseCase) Resync(ctx context.Context, walletID string, month domain.MonthKey) (*LedgerSync, error) {
	start := time.Now()
	result := &LedgerSync{WalletID: walletID, Month: month}

	ctx, cancel := context.WithTimeout(ctx, DefaultLedgerSyncTimeout)
	defer cancel()

	err := uc.resync(ctx, result)

	if uc.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "stale"
		}
		uc.metrics.LedgerSyncs.WithLabelValues(outcome).Inc()
		uc.metrics.LedgerSyncDuration.Observe(time.Since(start).Seconds())
	}

	return result, err
}

func (uc *LedgerUseCase) resync(ctx context.Context, result *LedgerSync) error {
	unlock, err := uc.lock(ctx, result.WalletID)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := uc.ensureMonth(ctx, result.WalletID, result.Month); err != nil {
		return err
	}

	balance, err := uc.recompute(ctx, result.WalletID, result.Month)
	if err != nil {
		return err
	}
	result.Balance = balance

	cascade, err := uc.cascade(ctx, result.WalletID, result.Month)
	result.MonthsCascaded = cascade.Recomputed
	result.CascadeLimitReached = cascade.LimitReached
	if err != nil {
		return err
	}

	if cascade.Last != nil && cascade.Through == result.Month {
		result.Balance = cascade.Last
	}

	return nil
}

func (uc *LedgerUseCase) ensureMonth(ctx context.Context, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	existing, err := uc.balanceRepo.Find(ctx, walletID, month)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrMonthlyBalanceNotFound) {
		return nil, err
	}

	opening, err := uc.openingBalance(ctx, walletID, month)
	if err != nil {
		return nil, err
	}

	snapshot := domain.NewMonthlyBalance(walletID, month, opening, uc.now())
	if err := uc.balanceRepo.Create(ctx, snapshot); err != nil {
		// Another process materialized it first.
		if errors.Is(err, domain.ErrMonthlyBalanceExists) {
			return uc.balanceRepo.Find(ctx, walletID, month)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SnapshotsCreated.Inc()
	}

	uc.logger.Debug().
		Str("wallet_id", walletID).
		Str("month", month.String()).
		Str("opening_balance", opening.String()).
		Msg("monthly snapshot materialized")

	return snapshot, nil
}

func (uc *LedgerUseCase) recompute(ctx context.Context, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	opening, err := uc.openingBalance(ctx, walletID, month)
	if err != nil {
		return nil, err
	}

	start, end := month.Start(), month.End()

	income, err := uc.txRepo.SumByKindInRange(ctx, walletID, domain.TransactionKindIncome, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum income %s: %w", month, err)
	}

	expense, err := uc.txRepo.SumByKindInRange(ctx, walletID, domain.TransactionKindExpense, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum expense %s: %w", month, err)
	}

	now := uc.now()
	snapshot := domain.NewMonthlyBalance(walletID, month, opening, now)
	snapshot.Apply(opening, income, expense, now)

	if err := uc.balanceRepo.Upsert(ctx, snapshot); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MonthsRecomputed.Inc()
	}

	return snapshot, nil
}

func (uc *LedgerUseCase) cascade(ctx context.Context, walletID string, from domain.MonthKey) (CascadeResult, error) {
	result := CascadeResult{From: from}
	current := from

	for result.Recomputed < uc.cascadeLimit {
		snapshot, err := uc.recompute(ctx, walletID, current)
		if err != nil {
			return result, err
		}

		result.Recomputed++
		result.Through = current
		result.Last = snapshot

		next := current.Next()
		exists, err := uc.exists(ctx, walletID, next)
		if err != nil {
			return result, err
		}
		if !exists {
			uc.observeCascade(result)
			return result, nil
		}

		current = next
	}

	result.LimitReached = true
	uc.observeCascade(result)

	uc.logger.Warn().
		Err(result.Err()).
		Str("wallet_id", walletID).
		Str("from", from.String()).
		Str("through", result.Through.String()).
		Int("limit", uc.cascadeLimit).
		Msg("cascade stopped at limit, later months stay stale until recomputed")

	return result, nil
}

func (uc *LedgerUseCase) observeCascade(result CascadeResult) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.CascadeLength.Observe(float64(result.Recomputed))
	if result.LimitReached {
		uc.metrics.CascadeLimitReached.Inc()
	}
}

// openingBalance is the closing balance of the immediately preceding month,
// or zero when that month was never materialized.
func (uc *LedgerUseCase) openingBalance(ctx context.Context, walletID string, month domain.MonthKey) (decimal.Decimal, error) {
	prev, err := uc.balanceRepo.Find(ctx, walletID, month.Prev())
	if err != nil {
		if errors.Is(err, domain.ErrMonthlyBalanceNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return prev.ClosingBalance, nil
}

func (uc *LedgerUseCase) exists(ctx context.Context, walletID string, month domain.MonthKey) (bool, error) {
	_, err := uc.balanceRepo.Find(ctx, walletID, month)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrMonthlyBalanceNotFound) {
		return false, nil
	}
	return false, err
}

func (uc *LedgerUseCase) lock(ctx context.Context, walletID string) (func(), error) {
	start := time.Now()

	unlock, err := uc.locker.Lock(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet %s: %w", walletID, err)
	}

	if uc.metrics != nil {
		uc.metrics.LockWaitDuration.Observe(time.Since(start).Seconds())
	}

	return unlock, nil
}

func (uc *LedgerUseCase) publishSynced(ctx context.Context, result *LedgerSync) {
	if uc.publisher == nil || uc.idGen == nil {
		return
	}

	closing := ""
	if result.Balance != nil {
		closing = result.Balance.ClosingBalance.String()
	}

	event := newEvent(uc.idGen, domain.AggregateTypeWallet, result.WalletID, domain.EventTypeLedgerSynced,
		domain.LedgerSyncedPayload(result.WalletID, result.Month, closing, result.MonthsCascaded, result.Stale),
		uc.now())

	publishEvent(ctx, uc.publisher, uc.metrics, uc.logger, event)
}
