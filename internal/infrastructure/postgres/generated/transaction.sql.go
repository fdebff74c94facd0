package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :exec
INSERT INTO transactions (id, wallet_id, user_id, kind, amount, category, notes, effective_date, transfer_id, due_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateTransactionParams struct {
	ID            string             `json:"id"`
	WalletID      string             `json:"wallet_id"`
	UserID        string             `json:"user_id"`
	Kind          string             `json:"kind"`
	Amount        pgtype.Numeric     `json:"amount"`
	Category      string             `json:"category"`
	Notes         string             `json:"notes"`
	EffectiveDate pgtype.Timestamptz `json:"effective_date"`
	TransferID    pgtype.Text        `json:"transfer_id"`
	DueID         pgtype.Text        `json:"due_id"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.Exec(ctx, createTransaction,
		arg.ID,
		arg.WalletID,
		arg.UserID,
		arg.Kind,
		arg.Amount,
		arg.Category,
		arg.Notes,
		arg.EffectiveDate,
		arg.TransferID,
		arg.DueID,
		arg.CreatedAt,
	)
	return err
}

const listTransactions = `-- name: ListTransactions :many
SELECT id, wallet_id, user_id, kind, amount, category, notes, effective_date, transfer_id, due_id, created_at
FROM transactions
WHERE user_id = $1
  AND ($2::text IS NULL OR wallet_id = $2)
  AND ($3::timestamptz IS NULL OR effective_date >= $3)
  AND ($4::timestamptz IS NULL OR effective_date < $4)
ORDER BY effective_date DESC, created_at DESC, id DESC
LIMIT $5
`

type ListTransactionsParams struct {
	UserID   string             `json:"user_id"`
	WalletID pgtype.Text        `json:"wallet_id"`
	FromDate pgtype.Timestamptz `json:"from_date"`
	ToDate   pgtype.Timestamptz `json:"to_date"`
	RowLimit pgtype.Int4        `json:"row_limit"`
}

func (q *Queries) ListTransactions(ctx context.Context, arg ListTransactionsParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactions,
		arg.UserID,
		arg.WalletID,
		arg.FromDate,
		arg.ToDate,
		arg.RowLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.WalletID,
			&i.UserID,
			&i.Kind,
			&i.Amount,
			&i.Category,
			&i.Notes,
			&i.EffectiveDate,
			&i.TransferID,
			&i.DueID,
			&i.CreatedAt,
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

const sumSpending = `-- name: SumSpending :one
SELECT COALESCE(SUM(amount), 0)::numeric AS total FROM transactions
WHERE user_id = $1 AND kind = 'EXPENSE' AND transfer_id IS NULL
  AND effective_date >= $2 AND effective_date < $3
`

type SumSpendingParams struct {
	UserID          string             `json:"user_id"`
	EffectiveDate   pgtype.Timestamptz `json:"effective_date"`
	EffectiveDate_2 pgtype.Timestamptz `json:"effective_date_2"`
}

func (q *Queries) SumSpending(ctx context.Context, arg SumSpendingParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumSpending, arg.UserID, arg.EffectiveDate, arg.EffectiveDate_2)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const sumTransfers = `-- name: SumTransfers :one
SELECT COALESCE(SUM(amount), 0)::numeric AS total FROM transactions
WHERE user_id = $1 AND kind = $2 AND transfer_id IS NOT NULL
  AND effective_date >= $3 AND effective_date < $4
`

type SumTransfersParams struct {
	UserID          string             `json:"user_id"`
	Kind            string             `json:"kind"`
	EffectiveDate   pgtype.Timestamptz `json:"effective_date"`
	EffectiveDate_2 pgtype.Timestamptz `json:"effective_date_2"`
}

func (q *Queries) SumTransfers(ctx context.Context, arg SumTransfersParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumTransfers,
		arg.UserID,
		arg.Kind,
		arg.EffectiveDate,
		arg.EffectiveDate_2,
	)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const sumTransactionsByCategory = `-- name: SumTransactionsByCategory :many
SELECT category, SUM(amount)::numeric AS total, COUNT(*) AS count FROM transactions
WHERE user_id = $1 AND kind = $2 AND transfer_id IS NULL
  AND effective_date >= $3 AND effective_date < $4
GROUP BY category
`

type SumTransactionsByCategoryParams struct {
	UserID          string             `json:"user_id"`
	Kind            string             `json:"kind"`
	EffectiveDate   pgtype.Timestamptz `json:"effective_date"`
	EffectiveDate_2 pgtype.Timestamptz `json:"effective_date_2"`
}

type SumTransactionsByCategoryRow struct {
	Category string         `json:"category"`
	Total    pgtype.Numeric `json:"total"`
	Count    int64          `json:"count"`
}

func (q *Queries) SumTransactionsByCategory(ctx context.Context, arg SumTransactionsByCategoryParams) ([]SumTransactionsByCategoryRow, error) {
	rows, err := q.db.Query(ctx, sumTransactionsByCategory,
		arg.UserID,
		arg.Kind,
		arg.EffectiveDate,
		arg.EffectiveDate_2,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SumTransactionsByCategoryRow
	for rows.Next() {
		var i SumTransactionsByCategoryRow
		if err := rows.Scan(&i.Category, &i.Total, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumTransactionsByKindInRange = `-- name: SumTransactionsByKindInRange :one
SELECT COALESCE(SUM(amount), 0)::numeric AS total FROM transactions
WHERE wallet_id = $1 AND kind = $2 AND effective_date >= $3 AND effective_date < $4
`

type SumTransactionsByKindInRangeParams struct {
	WalletID        string             `json:"wallet_id"`
	Kind            string             `json:"kind"`
	EffectiveDate   pgtype.Timestamptz `json:"effective_date"`
	EffectiveDate_2 pgtype.Timestamptz `json:"effective_date_2"`
}

func (q *Queries) SumTransactionsByKindInRange(ctx context.Context, arg SumTransactionsByKindInRangeParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumTransactionsByKindInRange,
		arg.WalletID,
		arg.Kind,
		arg.EffectiveDate,
		arg.EffectiveDate_2,
	)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}
