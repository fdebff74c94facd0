package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Due struct {
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

type MonthlyBalance struct {
	WalletID       string             `json:"wallet_id"`
	Month          pgtype.Date        `json:"month"`
	OpeningBalance pgtype.Numeric     `json:"opening_balance"`
	TotalIncome    pgtype.Numeric     `json:"total_income"`
	TotalExpense   pgtype.Numeric     `json:"total_expense"`
	ClosingBalance pgtype.Numeric     `json:"closing_balance"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type Transaction struct {
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

type Transfer struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	FromWalletID  string             `json:"from_wallet_id"`
	ToWalletID    string             `json:"to_wallet_id"`
	Amount        pgtype.Numeric     `json:"amount"`
	Notes         string             `json:"notes"`
	EffectiveDate pgtype.Timestamptz `json:"effective_date"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type Wallet struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Name      string             `json:"name"`
	Kind      string             `json:"kind"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
