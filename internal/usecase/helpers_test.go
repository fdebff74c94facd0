package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/repository/memory"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/idgen"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/lock"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/metrics"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

const testUser = "user-1"

// env wires the use cases over the in-memory store and an in-process lock.
type env struct {
	store        *memory.Store
	metrics      *metrics.Metrics
	ledger       *usecase.LedgerUseCase
	transactions *usecase.TransactionUseCase
	wallets      *usecase.WalletUseCase
	dues         *usecase.DueUseCase
	insights     *usecase.InsightUseCase
}

func newEnv(t *testing.T, cascadeLimit int) *env {
	t.Helper()

	store := memory.New()
	ids := idgen.NewULIDGenerator()
	m := metrics.New(prometheus.NewRegistry())
	logger := zerolog.Nop()

	ledger := usecase.NewLedgerUseCase(store.MonthlyBalances(), store.Transactions(), lock.NewLocal(), usecase.LedgerConfig{
		IDGen:        ids,
		Metrics:      m,
		Logger:       logger,
		CascadeLimit: cascadeLimit,
	})

	return &env{
		store:   store,
		metrics: m,
		ledger:  ledger,
		transactions: usecase.NewTransactionUseCase(store.TxManager(), store.Wallets(), store.Transactions(),
			store.Transfers(), ledger, ids, nil, m, logger),
		wallets: usecase.NewWalletUseCase(store.Wallets(), ledger, ids, nil, logger),
		dues: usecase.NewDueUseCase(store.TxManager(), store.Wallets(), store.Dues(), store.Transactions(),
			ledger, ids, nil, m, logger),
		insights: usecase.NewInsightUseCase(store.Wallets(), store.Transactions(), store.MonthlyBalances(), ledger, 0),
	}
}

func (e *env) wallet(t *testing.T, name string, kind domain.WalletKind) *domain.Wallet {
	t.Helper()

	w, err := e.wallets.CreateWallet(context.Background(), usecase.CreateWalletInput{
		UserID: testUser,
		Name:   name,
		Kind:   kind,
	})
	require.NoError(t, err)
	return w
}

func (e *env) income(t *testing.T, walletID, amount string, at time.Time) *usecase.RecordTransactionResult {
	t.Helper()
	return e.record(t, domain.TransactionKindIncome, walletID, amount, "Salary", at)
}

func (e *env) expense(t *testing.T, walletID, amount string, at time.Time) *usecase.RecordTransactionResult {
	t.Helper()
	return e.record(t, domain.TransactionKindExpense, walletID, amount, "Food", at)
}

func (e *env) record(t *testing.T, kind domain.TransactionKind, walletID, amount, category string, at time.Time) *usecase.RecordTransactionResult {
	t.Helper()

	input := usecase.RecordTransactionInput{
		EffectiveDate: &at,
		UserID:        testUser,
		WalletID:      walletID,
		Category:      category,
		Amount:        decimal.RequireFromString(amount),
	}

	var (
		result *usecase.RecordTransactionResult
		err    error
	)
	if kind == domain.TransactionKindIncome {
		result, err = e.transactions.AddIncome(context.Background(), input)
	} else {
		result, err = e.transactions.AddExpense(context.Background(), input)
	}
	require.NoError(t, err)
	require.False(t, result.Ledger.Stale, "ledger sync failed: %v", result.Ledger.Err)
	return result
}

func (e *env) snapshot(t *testing.T, walletID string, month domain.MonthKey) *domain.MonthlyBalance {
	t.Helper()

	b, err := e.store.MonthlyBalances().Find(context.Background(), walletID, month)
	require.NoError(t, err)
	return b
}

// requireChain asserts that consecutive materialized months link up and
// every snapshot adds up.
func (e *env) requireChain(t *testing.T, walletID string, from, to domain.MonthKey) {
	t.Helper()

	list, err := e.store.MonthlyBalances().ListByWallets(context.Background(), []string{walletID}, from, to)
	require.NoError(t, err)

	for i, b := range list {
		require.True(t, b.Consistent(), "month %s does not add up", b.Month)
		if i == 0 || list[i-1].Month.Next() != b.Month {
			continue
		}
		require.True(t, b.OpeningBalance.Equal(list[i-1].ClosingBalance),
			"month %s opens at %s but %s closes at %s", b.Month, b.OpeningBalance, list[i-1].Month, list[i-1].ClosingBalance)
	}
}

func month(year int, m time.Month) domain.MonthKey {
	return domain.MonthKey{Year: year, Month: m}
}

func day(year int, m time.Month, d int) time.Time {
	return time.Date(year, m, d, 12, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
