package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Wallet, error)
}

// TransactionRepository defines data access for ledger transactions.
// Time ranges are half-open: [start, end).
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	SumByKindInRange(ctx context.Context, walletID string, kind domain.TransactionKind, start, end time.Time) (decimal.Decimal, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	// SumSpending totals a user's expenses in range, excluding transfer legs.
	SumSpending(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error)
	// SumTransfers totals a user's transfer legs of kind in range.
	SumTransfers(ctx context.Context, userID string, kind domain.TransactionKind, start, end time.Time) (decimal.Decimal, error)
	// SumByCategory groups a user's transactions of kind in range by
	// category, excluding transfer legs.
	SumByCategory(ctx context.Context, userID string, kind domain.TransactionKind, start, end time.Time) ([]domain.CategoryTotal, error)
}

// MonthlyBalanceRepository defines data access for monthly balance snapshots.
type MonthlyBalanceRepository interface {
	// Find returns domain.ErrMonthlyBalanceNotFound when no snapshot exists.
	Find(ctx context.Context, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error)
	// Create returns domain.ErrMonthlyBalanceExists when the snapshot
	// already exists.
	Create(ctx context.Context, balance *domain.MonthlyBalance) error
	// Upsert atomically inserts or overwrites the snapshot figures. The
	// stored creation time is written back into balance.
	Upsert(ctx context.Context, balance *domain.MonthlyBalance) error
	// FindLatest returns the most recent snapshot at or before notAfter.
	FindLatest(ctx context.Context, walletID string, notAfter domain.MonthKey) (*domain.MonthlyBalance, error)
	ListByWallets(ctx context.Context, walletIDs []string, from, to domain.MonthKey) ([]*domain.MonthlyBalance, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
}

// DueRepository defines data access for dues.
type DueRepository interface {
	Create(ctx context.Context, tx Transaction, due *domain.Due) error
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Due, error)
	// MarkSettled returns domain.ErrDueAlreadySettled if the due is not pending.
	MarkSettled(ctx context.Context, tx Transaction, id string, settledAt time.Time) error
	ListByUser(ctx context.Context, userID string, status domain.DueStatus) ([]*domain.Due, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// WalletLocker serializes ledger updates per wallet.
type WalletLocker interface {
	// Lock blocks until the wallet lock is held or ctx is done. The returned
	// func releases the lock and is safe to call once.
	Lock(ctx context.Context, walletID string) (unlock func(), err error)
}

// EventPublisher delivers domain events to external systems.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}
