package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

func TestDueUseCase_LendAndSettle(t *testing.T) {
	e := newEnv(t, 0)
	ctx := context.Background()
	w := e.wallet(t, "Bank", domain.WalletKindBank)

	e.income(t, w.ID, "1000", day(2024, time.May, 1))

	lentOn := day(2024, time.May, 5)
	created, err := e.dues.CreateDue(ctx, usecase.CreateDueInput{
		DueDate:    &lentOn,
		WalletID:   &w.ID,
		UserID:     testUser,
		Type:       domain.DueTypeGive,
		PersonName: "Ravi",
		Reason:     "Concert tickets",
		Amount:     dec("250"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Transaction)
	assert.Equal(t, domain.TransactionKindExpense, created.Transaction.Kind)
	assert.Equal(t, "Lent Money", created.Transaction.Category)
	assert.Equal(t, "Ravi: Concert tickets", created.Transaction.Notes)
	assert.Equal(t, "750", created.Ledger.Balance.ClosingBalance.String())

	settledOn := day(2024, time.June, 2)
	e.dues.SetClock(func() time.Time { return settledOn })

	settled, err := e.dues.SettleDue(ctx, testUser, created.Due.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DueStatusSettled, settled.Due.Status)
	require.NotNil(t, settled.Due.SettledAt)
	assert.Equal(t, domain.TransactionKindIncome, settled.Transaction.Kind)
	assert.Equal(t, "Debt Repayment Received", settled.Transaction.Category)
	assert.True(t, settled.Transaction.EffectiveDate.Equal(settledOn))

	assert.Equal(t, "750", e.snapshot(t, w.ID, month(2024, time.May)).ClosingBalance.String(), "the original month is untouched")
	assert.Equal(t, "1000", e.snapshot(t, w.ID, month(2024, time.June)).ClosingBalance.String())

	_, err = e.dues.SettleDue(ctx, testUser, created.Due.ID)
	assert.ErrorIs(t, err, domain.ErrDueAlreadySettled)

	active, err := e.dues.ListActive(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, active)

	history, err := e.dues.ListHistory(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, created.Due.ID, history[0].ID)
}

func TestDueUseCase_BorrowAndRepay(t *testing.T) {
	e := newEnv(t, 0)
	ctx := context.Background()
	w := e.wallet(t, "Cash", domain.WalletKindCash)

	on := day(2024, time.July, 1)
	created, err := e.dues.CreateDue(ctx, usecase.CreateDueInput{
		DueDate:    &on,
		WalletID:   &w.ID,
		UserID:     testUser,
		Type:       domain.DueTypeTake,
		PersonName: "Meera",
		Amount:     dec("400"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionKindIncome, created.Transaction.Kind)
	assert.Equal(t, "Borrowed Money", created.Transaction.Category)
	assert.Equal(t, "Meera", created.Transaction.Notes)

	e.dues.SetClock(func() time.Time { return day(2024, time.July, 20) })

	settled, err := e.dues.SettleDue(ctx, testUser, created.Due.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionKindExpense, settled.Transaction.Kind)
	assert.Equal(t, "Debt Repayment Paid", settled.Transaction.Category)
	assert.True(t, e.snapshot(t, w.ID, month(2024, time.July)).ClosingBalance.IsZero())
}

func TestDueUseCase_WithoutWallet(t *testing.T) {
	e := newEnv(t, 0)
	ctx := context.Background()
	blank := "  "

	created, err := e.dues.CreateDue(ctx, usecase.CreateDueInput{
		WalletID:   &blank,
		UserID:     testUser,
		Type:       domain.DueTypeGive,
		PersonName: "Arjun",
		Amount:     dec("20"),
	})
	require.NoError(t, err)
	assert.Nil(t, created.Due.WalletID)
	assert.Nil(t, created.Transaction)
	assert.Nil(t, created.Ledger)

	settled, err := e.dues.SettleDue(ctx, testUser, created.Due.ID)
	require.NoError(t, err)
	assert.Nil(t, settled.Transaction)

	list, err := e.transactions.ListTransactions(ctx, usecase.ListTransactionsInput{UserID: testUser})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDueUseCase_Validation(t *testing.T) {
	e := newEnv(t, 0)
	ctx := context.Background()
	theirs, err := e.wallets.CreateWallet(ctx, usecase.CreateWalletInput{UserID: "user-2", Name: "Theirs", Kind: domain.WalletKindCash})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   usecase.CreateDueInput
		wantErr error
	}{
		{
			name:    "invalid type",
			input:   usecase.CreateDueInput{UserID: testUser, Type: "LOAN", PersonName: "A", Amount: dec("1")},
			wantErr: domain.ErrInvalidDueType,
		},
		{
			name:    "missing person",
			input:   usecase.CreateDueInput{UserID: testUser, Type: domain.DueTypeGive, Amount: dec("1")},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "invalid amount",
			input:   usecase.CreateDueInput{UserID: testUser, Type: domain.DueTypeGive, PersonName: "A", Amount: dec("0")},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "wallet of another user",
			input:   usecase.CreateDueInput{UserID: testUser, Type: domain.DueTypeGive, PersonName: "A", Amount: dec("1"), WalletID: &theirs.ID},
			wantErr: domain.ErrWalletNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.dues.CreateDue(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDueUseCase_SettleForeignOrMissingDue(t *testing.T) {
	e := newEnv(t, 0)
	ctx := context.Background()

	created, err := e.dues.CreateDue(ctx, usecase.CreateDueInput{UserID: testUser, Type: domain.DueTypeGive, PersonName: "A", Amount: dec("5")})
	require.NoError(t, err)

	_, err = e.dues.SettleDue(ctx, "user-2", created.Due.ID)
	assert.ErrorIs(t, err, domain.ErrDueNotFound)

	_, err = e.dues.SettleDue(ctx, testUser, "missing")
	assert.ErrorIs(t, err, domain.ErrDueNotFound)

	active, err := e.dues.ListActive(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestDueUseCase_ConcurrentSettleSucceedsOnce(t *testing.T) {
	e := newEnv(t, 0)
	ctx := context.Background()
	w := e.wallet(t, "Cash", domain.WalletKindCash)

	created, err := e.dues.CreateDue(ctx, usecase.CreateDueInput{
		WalletID: &w.ID, UserID: testUser, Type: domain.DueTypeGive, PersonName: "A", Amount: dec("5"),
	})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.dues.SettleDue(ctx, testUser, created.Due.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrDueAlreadySettled)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)

	list, err := e.transactions.ListTransactions(ctx, usecase.ListTransactionsInput{UserID: testUser})
	require.NoError(t, err)
	assert.Len(t, list, 2, "opening and one settlement")
}
