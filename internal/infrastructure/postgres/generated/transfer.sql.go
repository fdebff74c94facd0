package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransfer = `-- name: CreateTransfer :exec
INSERT INTO transfers (id, user_id, from_wallet_id, to_wallet_id, amount, notes, effective_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateTransferParams struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	FromWalletID  string             `json:"from_wallet_id"`
	ToWalletID    string             `json:"to_wallet_id"`
	Amount        pgtype.Numeric     `json:"amount"`
	Notes         string             `json:"notes"`
	EffectiveDate pgtype.Timestamptz `json:"effective_date"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransfer(ctx context.Context, arg CreateTransferParams) error {
	_, err := q.db.Exec(ctx, createTransfer,
		arg.ID,
		arg.UserID,
		arg.FromWalletID,
		arg.ToWalletID,
		arg.Amount,
		arg.Notes,
		arg.EffectiveDate,
		arg.CreatedAt,
	)
	return err
}

const getTransferByID = `-- name: GetTransferByID :one
SELECT id, user_id, from_wallet_id, to_wallet_id, amount, notes, effective_date, created_at
FROM transfers WHERE id = $1
`

func (q *Queries) GetTransferByID(ctx context.Context, id string) (Transfer, error) {
	row := q.db.QueryRow(ctx, getTransferByID, id)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.FromWalletID,
		&i.ToWalletID,
		&i.Amount,
		&i.Notes,
		&i.EffectiveDate,
		&i.CreatedAt,
	)
	return i, err
}
