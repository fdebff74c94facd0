package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultLedgerSyncTimeout bounds lock wait plus the ledger triple.
	DefaultLedgerSyncTimeout = 15 * time.Second

	// DefaultCascadeLimit is the maximum number of months a cascade recomputes.
	DefaultCascadeLimit = 24

	// DefaultBurnRateWindow is the number of months averaged for burn rate.
	DefaultBurnRateWindow = 3

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// Transaction listing limits
	DefaultTransactionListLimit = 20
	MonthTransactionListLimit   = 1000

	// Concurrent ledger reads when listing a user's wallets.
	walletFanout = 8
)
