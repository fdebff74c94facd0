package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
)

// DueUseCase handles money lent and borrowed.
type DueUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	dueRepo    DueRepository
	txRepo     TransactionRepository
	ledger     *LedgerUseCase
	idGen      IDGenerator
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

// NewDueUseCase creates a new DueUseCase.
func NewDueUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	dueRepo DueRepository,
	txRepo TransactionRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	publisher EventPublisher,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *DueUseCase {
	return &DueUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		dueRepo:    dueRepo,
		txRepo:     txRepo,
		ledger:     ledger,
		idGen:      idGen,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateDueInput represents input for creating a due.
type CreateDueInput struct {
	DueDate    *time.Time
	WalletID   *string
	UserID     string
	Type       domain.DueType
	PersonName string
	Reason     string
	Amount     decimal.Decimal
}

// DueResult is a due together with the wallet transaction it produced, if any.
type DueResult struct {
	Due         *domain.Due
	Transaction *domain.Transaction
	Ledger      *LedgerSync
}

// CreateDue records a due. When a wallet is linked, the money movement is
// recorded in the same database transaction and the wallet ledger is synced.
func (uc *DueUseCase) CreateDue(ctx context.Context, input CreateDueInput) (*DueResult, error) {
	now := uc.now()

	walletID := input.WalletID
	if walletID != nil && strings.TrimSpace(*walletID) == "" {
		walletID = nil
	}

	due := &domain.Due{
		CreatedAt:  now,
		DueDate:    effectiveDate(input.DueDate, now),
		WalletID:   walletID,
		UserID:     input.UserID,
		PersonName: strings.TrimSpace(input.PersonName),
		Reason:     input.Reason,
		Type:       input.Type,
		Status:     domain.DueStatusPending,
		Amount:     input.Amount,
	}

	if err := due.Validate(); err != nil {
		return nil, err
	}

	if due.WalletID != nil {
		if _, err := ownedWallet(ctx, uc.walletRepo, input.UserID, *due.WalletID); err != nil {
			return nil, err
		}
	}

	due.ID = uc.idGen.Generate()

	t := due.OpeningTransaction()
	if t != nil {
		t.ID = uc.idGen.Generate()
		t.CreatedAt = now
	}

	if err := withTransaction(ctx, uc.txManager, func(ctx context.Context, tx Transaction) error {
		if err := uc.dueRepo.Create(ctx, tx, due); err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		return uc.txRepo.Create(ctx, tx, t)
	}); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DuesCreated.Inc()
	}

	// Committed; the sync outlives the caller.
	ctx = context.WithoutCancel(ctx)

	result := &DueResult{Due: due, Transaction: t}
	if t != nil {
		result.Ledger = uc.ledger.Sync(ctx, t.WalletID, t.EffectiveDate)
	}

	uc.publish(ctx, newEvent(uc.idGen, domain.AggregateTypeDue, due.ID,
		domain.EventTypeDueCreated, domain.DuePayload(due), now))

	return result, nil
}

// SettleDue marks a pending due as settled. A linked wallet receives an
// offsetting transaction dated now; the original transaction is untouched.
func (uc *DueUseCase) SettleDue(ctx context.Context, userID, dueID string) (*DueResult, error) {
	now := uc.now()

	var (
		due *domain.Due
		t   *domain.Transaction
	)

	err := withTransaction(ctx, uc.txManager, func(ctx context.Context, tx Transaction) error {
		var err error
		due, err = uc.dueRepo.GetByIDForUpdate(ctx, tx, dueID)
		if err != nil {
			return err
		}

		if due.UserID != userID {
			return domain.ErrDueNotFound
		}

		if due.IsSettled() {
			return domain.ErrDueAlreadySettled
		}

		if err := uc.dueRepo.MarkSettled(ctx, tx, due.ID, now); err != nil {
			return err
		}

		due.Status = domain.DueStatusSettled
		due.SettledAt = &now

		t = due.SettlementTransaction(now)
		if t == nil {
			return nil
		}

		t.ID = uc.idGen.Generate()
		t.CreatedAt = now

		return uc.txRepo.Create(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DuesSettled.Inc()
	}

	// Committed; the sync outlives the caller.
	ctx = context.WithoutCancel(ctx)

	result := &DueResult{Due: due, Transaction: t}
	if t != nil {
		result.Ledger = uc.ledger.Sync(ctx, t.WalletID, t.EffectiveDate)
	}

	uc.publish(ctx, newEvent(uc.idGen, domain.AggregateTypeDue, due.ID,
		domain.EventTypeDueSettled, domain.DuePayload(due), now))

	return result, nil
}

// ListActive lists pending dues of the user.
func (uc *DueUseCase) ListActive(ctx context.Context, userID string) ([]*domain.Due, error) {
	return uc.dueRepo.ListByUser(ctx, userID, domain.DueStatusPending)
}

// ListHistory lists settled dues of the user.
func (uc *DueUseCase) ListHistory(ctx context.Context, userID string) ([]*domain.Due, error) {
	return uc.dueRepo.ListByUser(ctx, userID, domain.DueStatusSettled)
}

func (uc *DueUseCase) publish(ctx context.Context, event *domain.Event) {
	publishEvent(ctx, uc.publisher, uc.metrics, uc.logger, event)
}
