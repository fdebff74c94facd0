package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
)

// TransactionUseCase records income, expenses and transfers and keeps the
// monthly ledger in step with them.
type TransactionUseCase struct {
	txManager    TransactionManager
	walletRepo   WalletRepository
	txRepo       TransactionRepository
	transferRepo TransferRepository
	ledger       *LedgerUseCase
	idGen        IDGenerator
	publisher    EventPublisher
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	now          func() time.Time
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	txRepo TransactionRepository,
	transferRepo TransferRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	publisher EventPublisher,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:    txManager,
		walletRepo:   walletRepo,
		txRepo:       txRepo,
		transferRepo: transferRepo,
		ledger:       ledger,
		idGen:        idGen,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RecordTransactionInput represents input for recording income or an expense.
type RecordTransactionInput struct {
	EffectiveDate *time.Time
	UserID        string
	WalletID      string
	Category      string
	Notes         string
	Amount        decimal.Decimal
}

// RecordTransactionResult is a committed transaction and the ledger outcome.
type RecordTransactionResult struct {
	Transaction *domain.Transaction
	Ledger      *LedgerSync
}

// TransferInput represents input for moving money between two wallets.
type TransferInput struct {
	EffectiveDate *time.Time
	UserID        string
	FromWalletID  string
	ToWalletID    string
	Notes         string
	Amount        decimal.Decimal
}

// TransferResult is a committed transfer and the ledger outcome per side.
type TransferResult struct {
	Transfer   *domain.Transfer
	Outgoing   *domain.Transaction
	Incoming   *domain.Transaction
	FromLedger *LedgerSync
	ToLedger   *LedgerSync
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Month    *domain.MonthKey
	UserID   string
	WalletID string
	Limit    int
}

// AddIncome records an income transaction.
func (uc *TransactionUseCase) AddIncome(ctx context.Context, input RecordTransactionInput) (*RecordTransactionResult, error) {
	return uc.record(ctx, domain.TransactionKindIncome, input)
}

// AddExpense records an expense transaction.
func (uc *TransactionUseCase) AddExpense(ctx context.Context, input RecordTransactionInput) (*RecordTransactionResult, error) {
	return uc.record(ctx, domain.TransactionKindExpense, input)
}

func (uc *TransactionUseCase) record(ctx context.Context, kind domain.TransactionKind, input RecordTransactionInput) (*RecordTransactionResult, error) {
	now := uc.now()

	t := &domain.Transaction{
		CreatedAt:     now,
		EffectiveDate: effectiveDate(input.EffectiveDate, now),
		WalletID:      input.WalletID,
		UserID:        input.UserID,
		Category:      strings.TrimSpace(input.Category),
		Notes:         input.Notes,
		Kind:          kind,
		Amount:        input.Amount,
	}

	// 1. Validate before touching the store
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.ownedWallet(ctx, input.UserID, input.WalletID); err != nil {
		return nil, err
	}

	// 2. Insert and commit the transaction on its own
	t.ID = uc.idGen.Generate()

	if err := uc.insert(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.txRepo.Create(ctx, tx, t)
	}); err != nil {
		return nil, err
	}

	uc.observe(t)

	// 3. Bring the ledger up to date; failures leave the insert in place.
	// The write is committed, so a caller going away must not cut the sync short.
	ctx = context.WithoutCancel(ctx)
	synced := uc.ledger.Sync(ctx, t.WalletID, t.EffectiveDate)

	uc.publish(ctx, newEvent(uc.idGen, domain.AggregateTypeTransaction, t.ID,
		domain.EventTypeTransactionRecorded, domain.TransactionRecordedPayload(t), now))

	return &RecordTransactionResult{Transaction: t, Ledger: synced}, nil
}

// Transfer moves money between two wallets of the same user. The transfer
// and both legs commit together; each wallet's ledger is then synced
// independently.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	now := uc.now()

	transfer := &domain.Transfer{
		CreatedAt:     now,
		EffectiveDate: effectiveDate(input.EffectiveDate, now),
		UserID:        input.UserID,
		FromWalletID:  input.FromWalletID,
		ToWalletID:    input.ToWalletID,
		Notes:         input.Notes,
		Amount:        input.Amount,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.ownedWallet(ctx, input.UserID, input.FromWalletID); err != nil {
		return nil, err
	}
	if _, err := uc.ownedWallet(ctx, input.UserID, input.ToWalletID); err != nil {
		return nil, err
	}

	transfer.ID = uc.idGen.Generate()
	out, in := transfer.Legs()
	out.ID = uc.idGen.Generate()
	in.ID = uc.idGen.Generate()

	if err := uc.insert(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
			return err
		}
		if err := uc.txRepo.Create(ctx, tx, out); err != nil {
			return err
		}
		return uc.txRepo.Create(ctx, tx, in)
	}); err != nil {
		return nil, err
	}

	uc.observe(out)
	uc.observe(in)
	if uc.metrics != nil {
		uc.metrics.TransfersRecorded.Inc()
	}

	result := &TransferResult{Transfer: transfer, Outgoing: out, Incoming: in}

	// Wallet chains are independent, so both sides sync concurrently.
	ctx = context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.FromLedger = uc.ledger.Sync(ctx, transfer.FromWalletID, transfer.EffectiveDate)
	}()
	go func() {
		defer wg.Done()
		result.ToLedger = uc.ledger.Sync(ctx, transfer.ToWalletID, transfer.EffectiveDate)
	}()
	wg.Wait()

	uc.publish(ctx, newEvent(uc.idGen, domain.AggregateTypeTransfer, transfer.ID,
		domain.EventTypeTransferRecorded, map[string]any{
			"transfer_id":    transfer.ID,
			"from_wallet_id": transfer.FromWalletID,
			"to_wallet_id":   transfer.ToWalletID,
			"amount":         transfer.Amount.String(),
			"month":          domain.MonthOf(transfer.EffectiveDate).String(),
		}, now))

	return result, nil
}

// ListTransactions lists a user's transactions, newest first. A month filter
// raises the default limit so a whole month fits in one page.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.WalletID != "" {
		if _, err := uc.ownedWallet(ctx, input.UserID, input.WalletID); err != nil {
			return nil, err
		}
	}

	defaultLimit := DefaultTransactionListLimit
	if input.Month != nil {
		defaultLimit = MonthTransactionListLimit
	}

	return uc.txRepo.List(ctx, domain.TransactionFilter{
		Month:    input.Month,
		UserID:   input.UserID,
		WalletID: input.WalletID,
		Limit:    domain.ValidateLimit(input.Limit, defaultLimit, MonthTransactionListLimit),
	})
}

// GetTransfer retrieves a transfer owned by the user.
func (uc *TransactionUseCase) GetTransfer(ctx context.Context, userID, id string) (*domain.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if transfer.UserID != userID {
		return nil, domain.ErrTransferNotFound
	}

	return transfer, nil
}

func (uc *TransactionUseCase) ownedWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	return ownedWallet(ctx, uc.walletRepo, userID, walletID)
}

func (uc *TransactionUseCase) insert(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	return withTransaction(ctx, uc.txManager, fn)
}

func (uc *TransactionUseCase) observe(t *domain.Transaction) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.TransactionsRecorded.WithLabelValues(string(t.Kind)).Inc()
	uc.metrics.TransactionAmount.WithLabelValues(string(t.Kind)).Observe(t.Amount.InexactFloat64())
}

func (uc *TransactionUseCase) publish(ctx context.Context, event *domain.Event) {
	publishEvent(ctx, uc.publisher, uc.metrics, uc.logger, event)
}

// ownedWallet loads a wallet and hides wallets of other users behind
// domain.ErrWalletNotFound.
func ownedWallet(ctx context.Context, repo WalletRepository, userID, walletID string) (*domain.Wallet, error) {
	if walletID == "" {
		return nil, domain.ErrMissingField
	}

	wallet, err := repo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if !wallet.OwnedBy(userID) {
		return nil, domain.ErrWalletNotFound
	}

	return wallet, nil
}

// withTransaction runs fn in a database transaction with the default
// timeout, committing on success.
func withTransaction(ctx context.Context, txManager TransactionManager, fn func(ctx context.Context, tx Transaction) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(txCtx)

	if err := fn(txCtx, tx); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

func effectiveDate(requested *time.Time, now time.Time) time.Time {
	if requested == nil || requested.IsZero() {
		return now
	}
	return requested.UTC()
}
