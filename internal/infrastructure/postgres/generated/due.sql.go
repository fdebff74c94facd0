package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createDue = `-- name: CreateDue :exec
INSERT INTO dues (id, user_id, wallet_id, type, status, person_name, reason, amount, due_date, settled_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateDueParams struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	WalletID   pgtype.Text        `json:"wallet_id"`
	Type       string             `json:"type"`
	Status     string             `json:"status"`
	PersonName string             `json:"person_name"`
	Reason     string             `json:"reason"`
	Amount     pgtype.Numeric     `json:"amount"`
	DueDate    pgtype.Timestamptz `json:"due_date"`
	SettledAt  pgtype.Timestamptz `json:"settled_at"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateDue(ctx context.Context, arg CreateDueParams) error {
	_, err := q.db.Exec(ctx, createDue,
		arg.ID,
		arg.UserID,
		arg.WalletID,
		arg.Type,
		arg.Status,
		arg.PersonName,
		arg.Reason,
		arg.Amount,
		arg.DueDate,
		arg.SettledAt,
		arg.CreatedAt,
	)
	return err
}

const getDueByIDForUpdate = `-- name: GetDueByIDForUpdate :one
SELECT id, user_id, wallet_id, type, status, person_name, reason, amount, due_date, settled_at, created_at
FROM dues WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetDueByIDForUpdate(ctx context.Context, id string) (Due, error) {
	row := q.db.QueryRow(ctx, getDueByIDForUpdate, id)
	var i Due
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.WalletID,
		&i.Type,
		&i.Status,
		&i.PersonName,
		&i.Reason,
		&i.Amount,
		&i.DueDate,
		&i.SettledAt,
		&i.CreatedAt,
	)
	return i, err
}

const listPendingDuesByUser = `-- name: ListPendingDuesByUser :many
SELECT id, user_id, wallet_id, type, status, person_name, reason, amount, due_date, settled_at, created_at
FROM dues WHERE user_id = $1 AND status = 'PENDING'
ORDER BY due_date, id
`

func (q *Queries) ListPendingDuesByUser(ctx context.Context, userID string) ([]Due, error) {
	return q.listDues(ctx, listPendingDuesByUser, userID)
}

const listSettledDuesByUser = `-- name: ListSettledDuesByUser :many
SELECT id, user_id, wallet_id, type, status, person_name, reason, amount, due_date, settled_at, created_at
FROM dues WHERE user_id = $1 AND status = 'SETTLED'
ORDER BY settled_at DESC, id
`

func (q *Queries) ListSettledDuesByUser(ctx context.Context, userID string) ([]Due, error) {
	return q.listDues(ctx, listSettledDuesByUser, userID)
}

func (q *Queries) listDues(ctx context.Context, query, userID string) ([]Due, error) {
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Due
	for rows.Next() {
		var i Due
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.WalletID,
			&i.Type,
			&i.Status,
			&i.PersonName,
			&i.Reason,
			&i.Amount,
			&i.DueDate,
			&i.SettledAt,
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

const markDueSettled = `-- name: MarkDueSettled :execrows
UPDATE dues SET status = 'SETTLED', settled_at = $2
WHERE id = $1 AND status = 'PENDING'
`

type MarkDueSettledParams struct {
	ID        string             `json:"id"`
	SettledAt pgtype.Timestamptz `json:"settled_at"`
}

func (q *Queries) MarkDueSettled(ctx context.Context, arg MarkDueSettledParams) (int64, error) {
	result, err := q.db.Exec(ctx, markDueSettled, arg.ID, arg.SettledAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
