package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/postgres/generated"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

var _ usecase.MonthlyBalanceRepository = (*MonthlyBalanceRepository)(nil)

// MonthlyBalanceRepository implements usecase.MonthlyBalanceRepository.
// Writes run outside caller transactions and are retried on deadlock or
// serialization failure.
type MonthlyBalanceRepository struct {
	queries *generated.Queries
	retrier *Retrier
}

// NewMonthlyBalanceRepository creates a new MonthlyBalanceRepository.
func NewMonthlyBalanceRepository(db generated.DBTX, retrier *Retrier) *MonthlyBalanceRepository {
	return &MonthlyBalanceRepository{
		queries: generated.New(db),
		retrier: retrier,
	}
}

// Find returns the snapshot of walletID for month.
func (r *MonthlyBalanceRepository) Find(ctx context.Context, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	row, err := r.queries.GetMonthlyBalance(ctx, generated.GetMonthlyBalanceParams{
		WalletID: walletID,
		Month:    monthToDate(month),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMonthlyBalanceNotFound
		}

		return nil, domain.NewStoreError("find monthly balance", err)
	}

	return rowToMonthlyBalance(row), nil
}

// Create inserts the snapshot unless one already exists.
func (r *MonthlyBalanceRepository) Create(ctx context.Context, balance *domain.MonthlyBalance) error {
	var inserted int64
	err := r.retrier.Retry(ctx, func() error {
		var err error
		inserted, err = r.queries.CreateMonthlyBalance(ctx, generated.CreateMonthlyBalanceParams(balanceParams(balance)))
		return err
	})
	if err != nil {
		return domain.NewStoreError("create monthly balance", err)
	}

	if inserted == 0 {
		return domain.ErrMonthlyBalanceExists
	}

	return nil
}

// Upsert inserts or overwrites the snapshot figures.
func (r *MonthlyBalanceRepository) Upsert(ctx context.Context, balance *domain.MonthlyBalance) error {
	err := r.retrier.Retry(ctx, func() error {
		createdAt, err := r.queries.UpsertMonthlyBalance(ctx, balanceParams(balance))
		if err != nil {
			return err
		}

		balance.CreatedAt = createdAt.Time.UTC()
		return nil
	})

	return domain.NewStoreError("upsert monthly balance", err)
}

// FindLatest returns the newest snapshot at or before notAfter.
func (r *MonthlyBalanceRepository) FindLatest(ctx context.Context, walletID string, notAfter domain.MonthKey) (*domain.MonthlyBalance, error) {
	row, err := r.queries.GetLatestMonthlyBalance(ctx, generated.GetLatestMonthlyBalanceParams{
		WalletID: walletID,
		Month:    monthToDate(notAfter),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMonthlyBalanceNotFound
		}

		return nil, domain.NewStoreError("find latest monthly balance", err)
	}

	return rowToMonthlyBalance(row), nil
}

// ListByWallets returns snapshots of the wallets in [from, to], ordered by
// wallet then month.
func (r *MonthlyBalanceRepository) ListByWallets(ctx context.Context, walletIDs []string, from, to domain.MonthKey) ([]*domain.MonthlyBalance, error) {
	if len(walletIDs) == 0 {
		return []*domain.MonthlyBalance{}, nil
	}

	rows, err := r.queries.ListMonthlyBalancesByWallets(ctx, generated.ListMonthlyBalancesByWalletsParams{
		Column1: walletIDs,
		Month:   monthToDate(from),
		Month_2: monthToDate(to),
	})
	if err != nil {
		return nil, domain.NewStoreError("list monthly balances", err)
	}

	result := make([]*domain.MonthlyBalance, len(rows))
	for i, row := range rows {
		result[i] = rowToMonthlyBalance(row)
	}

	return result, nil
}

func balanceParams(b *domain.MonthlyBalance) generated.UpsertMonthlyBalanceParams {
	return generated.UpsertMonthlyBalanceParams{
		WalletID:       b.WalletID,
		Month:          monthToDate(b.Month),
		OpeningBalance: decimalToNumeric(b.OpeningBalance),
		TotalIncome:    decimalToNumeric(b.TotalIncome),
		TotalExpense:   decimalToNumeric(b.TotalExpense),
		ClosingBalance: decimalToNumeric(b.ClosingBalance),
		CreatedAt:      timeToPgTimestamptz(b.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(b.UpdatedAt),
	}
}

func rowToMonthlyBalance(row generated.MonthlyBalance) *domain.MonthlyBalance {
	return &domain.MonthlyBalance{
		CreatedAt:      row.CreatedAt.Time.UTC(),
		UpdatedAt:      row.UpdatedAt.Time.UTC(),
		WalletID:       row.WalletID,
		Month:          dateToMonth(row.Month),
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		TotalIncome:    numericToDecimal(row.TotalIncome),
		TotalExpense:   numericToDecimal(row.TotalExpense),
		ClosingBalance: numericToDecimal(row.ClosingBalance),
	}
}
