package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category labels attached to the two legs of a transfer.
const (
	TransferOutCategory = "Transfer Out"
	TransferInCategory  = "Transfer In"
)

// Transfer represents a money movement between two wallets of one user.
// It is ledgered as an EXPENSE leg on the source and an INCOME leg on the
// destination, both carrying the transfer ID.
type Transfer struct {
	CreatedAt     time.Time
	EffectiveDate time.Time
	ID            string
	UserID        string
	FromWalletID  string
	ToWalletID    string
	Notes         string
	Amount        decimal.Decimal
}

// Validate validates transfer request.
func (t *Transfer) Validate() error {
	if t.FromWalletID == "" || t.ToWalletID == "" {
		return ErrMissingField
	}

	if t.FromWalletID == t.ToWalletID {
		return ErrSameWallet
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if err := ValidateEffectiveDate(t.EffectiveDate); err != nil {
		return err
	}

	return ValidateNotes(t.Notes)
}

// Legs builds the two ledger transactions of the transfer. IDs are assigned
// by the caller.
func (t *Transfer) Legs() (out, in *Transaction) {
	transferID := t.ID

	out = &Transaction{
		CreatedAt:     t.CreatedAt,
		EffectiveDate: t.EffectiveDate,
		TransferID:    &transferID,
		WalletID:      t.FromWalletID,
		UserID:        t.UserID,
		Category:      TransferOutCategory,
		Notes:         t.Notes,
		Kind:          TransactionKindExpense,
		Amount:        t.Amount,
	}

	in = &Transaction{
		CreatedAt:     t.CreatedAt,
		EffectiveDate: t.EffectiveDate,
		TransferID:    &transferID,
		WalletID:      t.ToWalletID,
		UserID:        t.UserID,
		Category:      TransferInCategory,
		Notes:         t.Notes,
		Kind:          TransactionKindIncome,
		Amount:        t.Amount,
	}

	return out, in
}
