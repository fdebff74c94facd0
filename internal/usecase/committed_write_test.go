package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/repository/memory"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/idgen"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/lock"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// hangUpOnCommit plays a client that disconnects as soon as its write commits.
type hangUpOnCommit struct {
	cancel context.CancelFunc
}

func (m hangUpOnCommit) Begin(context.Context) (usecase.Transaction, error) {
	return hangUpTx(m), nil
}

type hangUpTx struct {
	cancel context.CancelFunc
}

func (t hangUpTx) Commit(context.Context) error {
	t.cancel()
	return nil
}

func (t hangUpTx) Rollback(context.Context) error { return nil }

// writeThrough stores records in their own memory transaction, ignoring the
// one it is handed.
type writeThrough struct {
	store *memory.Store
}

func (w writeThrough) commit(ctx context.Context, fn func(tx usecase.Transaction) error) error {
	tx, err := w.store.TxManager().Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type writeThroughTransactions struct {
	usecase.TransactionRepository
	writeThrough
}

func (r writeThroughTransactions) Create(ctx context.Context, _ usecase.Transaction, t *domain.Transaction) error {
	return r.commit(ctx, func(tx usecase.Transaction) error { return r.TransactionRepository.Create(ctx, tx, t) })
}

type writeThroughTransfers struct {
	usecase.TransferRepository
	writeThrough
}

func (r writeThroughTransfers) Create(ctx context.Context, _ usecase.Transaction, transfer *domain.Transfer) error {
	return r.commit(ctx, func(tx usecase.Transaction) error { return r.TransferRepository.Create(ctx, tx, transfer) })
}

type writeThroughDues struct {
	usecase.DueRepository
	writeThrough
}

func (r writeThroughDues) Create(ctx context.Context, _ usecase.Transaction, due *domain.Due) error {
	return r.commit(ctx, func(tx usecase.Transaction) error { return r.DueRepository.Create(ctx, tx, due) })
}

// networkLocker fails fast on a done context, like a lock behind a network
// round trip.
type networkLocker struct {
	usecase.WalletLocker
}

func (l networkLocker) Lock(ctx context.Context, walletID string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.WalletLocker.Lock(ctx, walletID)
}

type hangUpEnv struct {
	*env
	ctx          context.Context
	transactions *usecase.TransactionUseCase
	dues         *usecase.DueUseCase
}

func newHangUpEnv(t *testing.T) *hangUpEnv {
	t.Helper()

	e := newEnv(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := e.store
	ids := idgen.NewULIDGenerator()
	logger := zerolog.Nop()
	through := writeThrough{store: store}

	ledger := usecase.NewLedgerUseCase(store.MonthlyBalances(), store.Transactions(), networkLocker{lock.NewLocal()},
		usecase.LedgerConfig{IDGen: ids, Logger: logger})
	txRepo := writeThroughTransactions{TransactionRepository: store.Transactions(), writeThrough: through}

	return &hangUpEnv{
		env: e,
		ctx: ctx,
		transactions: usecase.NewTransactionUseCase(hangUpOnCommit{cancel: cancel}, store.Wallets(), txRepo,
			writeThroughTransfers{TransferRepository: store.Transfers(), writeThrough: through}, ledger, ids, nil, nil, logger),
		dues: usecase.NewDueUseCase(hangUpOnCommit{cancel: cancel}, store.Wallets(),
			writeThroughDues{DueRepository: store.Dues(), writeThrough: through}, txRepo, ledger, ids, nil, nil, logger),
	}
}

func TestCommittedWrite_SyncsAfterCallerHangsUp(t *testing.T) {
	t.Run("income", func(t *testing.T) {
		h := newHangUpEnv(t)
		w := h.wallet(t, "Cash", domain.WalletKindCash)
		at := day(2024, time.March, 3)

		result, err := h.transactions.AddIncome(h.ctx, usecase.RecordTransactionInput{
			EffectiveDate: &at, UserID: testUser, WalletID: w.ID, Category: "Salary", Amount: dec("120"),
		})
		require.NoError(t, err)
		require.Error(t, h.ctx.Err())

		assert.False(t, result.Ledger.Stale, "sync failed: %v", result.Ledger.Err)
		assert.True(t, h.snapshot(t, w.ID, month(2024, time.March)).ClosingBalance.Equal(dec("120")))
	})

	t.Run("transfer", func(t *testing.T) {
		h := newHangUpEnv(t)
		bank := h.wallet(t, "Bank", domain.WalletKindBank)
		cash := h.wallet(t, "Cash", domain.WalletKindCash)
		at := day(2024, time.March, 3)

		result, err := h.transactions.Transfer(h.ctx, usecase.TransferInput{
			EffectiveDate: &at, UserID: testUser, FromWalletID: bank.ID, ToWalletID: cash.ID, Amount: dec("40"),
		})
		require.NoError(t, err)

		assert.False(t, result.FromLedger.Stale, "sync failed: %v", result.FromLedger.Err)
		assert.False(t, result.ToLedger.Stale, "sync failed: %v", result.ToLedger.Err)
		assert.True(t, h.snapshot(t, bank.ID, month(2024, time.March)).ClosingBalance.Equal(dec("-40")))
		assert.True(t, h.snapshot(t, cash.ID, month(2024, time.March)).ClosingBalance.Equal(dec("40")))
	})

	t.Run("due", func(t *testing.T) {
		h := newHangUpEnv(t)
		w := h.wallet(t, "Bank", domain.WalletKindBank)
		at := day(2024, time.March, 3)

		result, err := h.dues.CreateDue(h.ctx, usecase.CreateDueInput{
			DueDate: &at, WalletID: &w.ID, UserID: testUser, Type: domain.DueTypeGive,
			PersonName: "Ravi", Reason: "Lunch", Amount: dec("15"),
		})
		require.NoError(t, err)
		require.NotNil(t, result.Ledger)

		assert.False(t, result.Ledger.Stale, "sync failed: %v", result.Ledger.Err)
		assert.True(t, h.snapshot(t, w.ID, month(2024, time.March)).ClosingBalance.Equal(dec("-15")))
	})
}
