package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createWallet = `-- name: CreateWallet :exec
INSERT INTO wallets (id, user_id, name, kind, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateWalletParams struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Name      string             `json:"name"`
	Kind      string             `json:"kind"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateWallet(ctx context.Context, arg CreateWalletParams) error {
	_, err := q.db.Exec(ctx, createWallet,
		arg.ID,
		arg.UserID,
		arg.Name,
		arg.Kind,
		arg.CreatedAt,
	)
	return err
}

const getWalletByID = `-- name: GetWalletByID :one
SELECT id, user_id, name, kind, created_at FROM wallets WHERE id = $1
`

func (q *Queries) GetWalletByID(ctx context.Context, id string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletByID, id)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Name,
		&i.Kind,
		&i.CreatedAt,
	)
	return i, err
}

const listWalletsByUser = `-- name: ListWalletsByUser :many
SELECT id, user_id, name, kind, created_at FROM wallets
WHERE user_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListWalletsByUser(ctx context.Context, userID string) ([]Wallet, error) {
	rows, err := q.db.Query(ctx, listWalletsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Wallet
	for rows.Next() {
		var i Wallet
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Name,
			&i.Kind,
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
