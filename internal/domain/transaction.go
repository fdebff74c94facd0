package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a transaction relative to its wallet.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "INCOME"
	TransactionKindExpense TransactionKind = "EXPENSE"
)

// ParseTransactionKind normalizes and validates a transaction kind.
func ParseTransactionKind(s string) (TransactionKind, error) {
	kind := TransactionKind(strings.ToUpper(strings.TrimSpace(s)))
	if !kind.Valid() {
		return "", ErrInvalidKind
	}

	return kind, nil
}

func (k TransactionKind) Valid() bool {
	return k == TransactionKindIncome || k == TransactionKindExpense
}

// Opposite returns the kind that offsets k.
func (k TransactionKind) Opposite() TransactionKind {
	if k == TransactionKindIncome {
		return TransactionKindExpense
	}
	return TransactionKindIncome
}

// Transaction is an immutable income or expense record on one wallet.
// Corrections are new offsetting transactions, never edits.
type Transaction struct {
	CreatedAt     time.Time
	EffectiveDate time.Time
	TransferID    *string
	DueID         *string
	ID            string
	WalletID      string
	UserID        string
	Category      string // category for expenses, source for incomes
	Notes         string
	Kind          TransactionKind
	Amount        decimal.Decimal
}

// Validate checks transaction invariants.
func (t *Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if err := ValidateEffectiveDate(t.EffectiveDate); err != nil {
		return err
	}

	if t.WalletID == "" {
		return ErrMissingField
	}

	if err := ValidateLabel("category", t.Category); err != nil {
		return err
	}

	return ValidateNotes(t.Notes)
}

// Month returns the calendar month the transaction is ledgered in.
func (t *Transaction) Month() MonthKey {
	return MonthOf(t.EffectiveDate)
}

// IsTransferLeg reports whether the transaction is one side of a transfer.
func (t *Transaction) IsTransferLeg() bool {
	return t.TransferID != nil
}

// SignedAmount returns the amount as it affects the wallet balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == TransactionKindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionFilter selects transactions for listing.
type TransactionFilter struct {
	Month    *MonthKey
	UserID   string
	WalletID string
	Limit    int
}

// CategoryTotal is the sum of one category's transactions.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}
