package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createMonthlyBalance = `-- name: CreateMonthlyBalance :execrows
INSERT INTO monthly_balances (wallet_id, month, opening_balance, total_income, total_expense, closing_balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (wallet_id, month) DO NOTHING
`

type CreateMonthlyBalanceParams struct {
	WalletID       string             `json:"wallet_id"`
	Month          pgtype.Date        `json:"month"`
	OpeningBalance pgtype.Numeric     `json:"opening_balance"`
	TotalIncome    pgtype.Numeric     `json:"total_income"`
	TotalExpense   pgtype.Numeric     `json:"total_expense"`
	ClosingBalance pgtype.Numeric     `json:"closing_balance"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateMonthlyBalance(ctx context.Context, arg CreateMonthlyBalanceParams) (int64, error) {
	result, err := q.db.Exec(ctx, createMonthlyBalance,
		arg.WalletID,
		arg.Month,
		arg.OpeningBalance,
		arg.TotalIncome,
		arg.TotalExpense,
		arg.ClosingBalance,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getLatestMonthlyBalance = `-- name: GetLatestMonthlyBalance :one
SELECT wallet_id, month, opening_balance, total_income, total_expense, closing_balance, created_at, updated_at
FROM monthly_balances WHERE wallet_id = $1 AND month <= $2
ORDER BY month DESC
LIMIT 1
`

type GetLatestMonthlyBalanceParams struct {
	WalletID string      `json:"wallet_id"`
	Month    pgtype.Date `json:"month"`
}

func (q *Queries) GetLatestMonthlyBalance(ctx context.Context, arg GetLatestMonthlyBalanceParams) (MonthlyBalance, error) {
	row := q.db.QueryRow(ctx, getLatestMonthlyBalance, arg.WalletID, arg.Month)
	var i MonthlyBalance
	err := row.Scan(
		&i.WalletID,
		&i.Month,
		&i.OpeningBalance,
		&i.TotalIncome,
		&i.TotalExpense,
		&i.ClosingBalance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getMonthlyBalance = `-- name: GetMonthlyBalance :one
SELECT wallet_id, month, opening_balance, total_income, total_expense, closing_balance, created_at, updated_at
FROM monthly_balances WHERE wallet_id = $1 AND month = $2
`

type GetMonthlyBalanceParams struct {
	WalletID string      `json:"wallet_id"`
	Month    pgtype.Date `json:"month"`
}

func (q *Queries) GetMonthlyBalance(ctx context.Context, arg GetMonthlyBalanceParams) (MonthlyBalance, error) {
	row := q.db.QueryRow(ctx, getMonthlyBalance, arg.WalletID, arg.Month)
	var i MonthlyBalance
	err := row.Scan(
		&i.WalletID,
		&i.Month,
		&i.OpeningBalance,
		&i.TotalIncome,
		&i.TotalExpense,
		&i.ClosingBalance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listMonthlyBalancesByWallets = `-- name: ListMonthlyBalancesByWallets :many
SELECT wallet_id, month, opening_balance, total_income, total_expense, closing_balance, created_at, updated_at
FROM monthly_balances
WHERE wallet_id = ANY($1::text[]) AND month >= $2 AND month <= $3
ORDER BY wallet_id, month
`

type ListMonthlyBalancesByWalletsParams struct {
	Column1 []string    `json:"column_1"`
	Month   pgtype.Date `json:"month"`
	Month_2 pgtype.Date `json:"month_2"`
}

func (q *Queries) ListMonthlyBalancesByWallets(ctx context.Context, arg ListMonthlyBalancesByWalletsParams) ([]MonthlyBalance, error) {
	rows, err := q.db.Query(ctx, listMonthlyBalancesByWallets, arg.Column1, arg.Month, arg.Month_2)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MonthlyBalance
	for rows.Next() {
		var i MonthlyBalance
		if err := rows.Scan(
			&i.WalletID,
			&i.Month,
			&i.OpeningBalance,
			&i.TotalIncome,
			&i.TotalExpense,
			&i.ClosingBalance,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertMonthlyBalance = `-- name: UpsertMonthlyBalance :one
INSERT INTO monthly_balances (wallet_id, month, opening_balance, total_income, total_expense, closing_balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (wallet_id, month) DO UPDATE SET
    opening_balance = EXCLUDED.opening_balance,
    total_income    = EXCLUDED.total_income,
    total_expense   = EXCLUDED.total_expense,
    closing_balance = EXCLUDED.closing_balance,
    updated_at      = EXCLUDED.updated_at
RETURNING created_at
`

type UpsertMonthlyBalanceParams struct {
	WalletID       string             `json:"wallet_id"`
	Month          pgtype.Date        `json:"month"`
	OpeningBalance pgtype.Numeric     `json:"opening_balance"`
	TotalIncome    pgtype.Numeric     `json:"total_income"`
	TotalExpense   pgtype.Numeric     `json:"total_expense"`
	ClosingBalance pgtype.Numeric     `json:"closing_balance"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpsertMonthlyBalance(ctx context.Context, arg UpsertMonthlyBalanceParams) (pgtype.Timestamptz, error) {
	row := q.db.QueryRow(ctx, upsertMonthlyBalance,
		arg.WalletID,
		arg.Month,
		arg.OpeningBalance,
		arg.TotalIncome,
		arg.TotalExpense,
		arg.ClosingBalance,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var created_at pgtype.Timestamptz
	err := row.Scan(&created_at)
	return created_at, err
}
