package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/postgres/generated"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

var _ usecase.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create inserts a transaction within tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	err := txQueries(tx).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:            t.ID,
		WalletID:      t.WalletID,
		UserID:        t.UserID,
		Kind:          string(t.Kind),
		Amount:        decimalToNumeric(t.Amount),
		Category:      t.Category,
		Notes:         t.Notes,
		EffectiveDate: timeToPgTimestamptz(t.EffectiveDate),
		TransferID:    optionalText(t.TransferID),
		DueID:         optionalText(t.DueID),
		CreatedAt:     timeToPgTimestamptz(t.CreatedAt),
	})
	if hasPgCode(err, pgErrForeignKeyViolation) {
		return domain.ErrWalletNotFound
	}

	return domain.NewStoreError("create transaction", err)
}

// SumByKindInRange totals a wallet's transactions of kind in [start, end).
func (r *TransactionRepository) SumByKindInRange(ctx context.Context, walletID string, kind domain.TransactionKind, start, end time.Time) (decimal.Decimal, error) {
	total, err := r.queries.SumTransactionsByKindInRange(ctx, generated.SumTransactionsByKindInRangeParams{
		WalletID:        walletID,
		Kind:            string(kind),
		EffectiveDate:   timeToPgTimestamptz(start),
		EffectiveDate_2: timeToPgTimestamptz(end),
	})
	if err != nil {
		return decimal.Zero, domain.NewStoreError("sum transactions", err)
	}

	return numericToDecimal(total), nil
}

// List returns the user's transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	params := generated.ListTransactionsParams{UserID: filter.UserID}
	if filter.WalletID != "" {
		params.WalletID = pgtype.Text{String: filter.WalletID, Valid: true}
	}
	if filter.Month != nil {
		params.FromDate = timeToPgTimestamptz(filter.Month.Start())
		params.ToDate = timeToPgTimestamptz(filter.Month.End())
	}
	if filter.Limit > 0 {
		params.RowLimit = pgtype.Int4{Int32: int32(filter.Limit), Valid: true}
	}

	rows, err := r.queries.ListTransactions(ctx, params)
	if err != nil {
		return nil, domain.NewStoreError("list transactions", err)
	}

	result := make([]*domain.Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}

	return result, nil
}

// SumSpending totals the user's expenses in range, excluding transfer legs.
func (r *TransactionRepository) SumSpending(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	total, err := r.queries.SumSpending(ctx, generated.SumSpendingParams{
		UserID:          userID,
		EffectiveDate:   timeToPgTimestamptz(start),
		EffectiveDate_2: timeToPgTimestamptz(end),
	})
	if err != nil {
		return decimal.Zero, domain.NewStoreError("sum spending", err)
	}

	return numericToDecimal(total), nil
}

// SumTransfers totals the user's transfer legs of kind in range.
func (r *TransactionRepository) SumTransfers(ctx context.Context, userID string, kind domain.TransactionKind, start, end time.Time) (decimal.Decimal, error) {
	total, err := r.queries.SumTransfers(ctx, generated.SumTransfersParams{
		UserID:          userID,
		Kind:            string(kind),
		EffectiveDate:   timeToPgTimestamptz(start),
		EffectiveDate_2: timeToPgTimestamptz(end),
	})
	if err != nil {
		return decimal.Zero, domain.NewStoreError("sum transfers", err)
	}

	return numericToDecimal(total), nil
}

// SumByCategory groups the user's transactions of kind by category.
func (r *TransactionRepository) SumByCategory(ctx context.Context, userID string, kind domain.TransactionKind, start, end time.Time) ([]domain.CategoryTotal, error) {
	rows, err := r.queries.SumTransactionsByCategory(ctx, generated.SumTransactionsByCategoryParams{
		UserID:          userID,
		Kind:            string(kind),
		EffectiveDate:   timeToPgTimestamptz(start),
		EffectiveDate_2: timeToPgTimestamptz(end),
	})
	if err != nil {
		return nil, domain.NewStoreError("sum by category", err)
	}

	totals := make([]domain.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = domain.CategoryTotal{
			Category: row.Category,
			Total:    numericToDecimal(row.Total),
			Count:    int(row.Count),
		}
	}

	return totals, nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		CreatedAt:     row.CreatedAt.Time.UTC(),
		EffectiveDate: row.EffectiveDate.Time.UTC(),
		TransferID:    textPtr(row.TransferID),
		DueID:         textPtr(row.DueID),
		ID:            row.ID,
		WalletID:      row.WalletID,
		UserID:        row.UserID,
		Category:      row.Category,
		Notes:         row.Notes,
		Kind:          domain.TransactionKind(row.Kind),
		Amount:        numericToDecimal(row.Amount),
	}
}
