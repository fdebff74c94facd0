package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DueType is the direction of an obligation.
type DueType string

const (
	// DueTypeGive is money lent to someone; it leaves the wallet.
	DueTypeGive DueType = "GIVE"
	// DueTypeTake is money borrowed from someone; it enters the wallet.
	DueTypeTake DueType = "TAKE"
)

// ParseDueType normalizes and validates a due type.
func ParseDueType(s string) (DueType, error) {
	t := DueType(strings.ToUpper(strings.TrimSpace(s)))
	if t != DueTypeGive && t != DueTypeTake {
		return "", ErrInvalidDueType
	}

	return t, nil
}

// DueStatus is the lifecycle state of an obligation.
type DueStatus string

const (
	DueStatusPending DueStatus = "PENDING"
	DueStatusSettled DueStatus = "SETTLED"
)

// Due is money owed to or by the user. When linked to a wallet, creating it
// records the money movement and settling it records the offsetting one.
type Due struct {
	CreatedAt  time.Time
	DueDate    time.Time
	SettledAt  *time.Time
	WalletID   *string
	ID         string
	UserID     string
	PersonName string
	Reason     string
	Type       DueType
	Status     DueStatus
	Amount     decimal.Decimal
}

// Validate checks due invariants.
func (d *Due) Validate() error {
	if d.Type != DueTypeGive && d.Type != DueTypeTake {
		return ErrInvalidDueType
	}

	if err := ValidateLabel("person_name", d.PersonName); err != nil {
		return err
	}

	if err := ValidateAmount(d.Amount); err != nil {
		return err
	}

	if err := ValidateEffectiveDate(d.DueDate); err != nil {
		return err
	}

	return ValidateNotes(d.Reason)
}

// IsSettled reports whether the due has been settled.
func (d *Due) IsSettled() bool {
	return d.Status == DueStatusSettled
}

// OpeningTransaction returns the wallet transaction recorded when the due is
// created, or nil when no wallet is linked.
func (d *Due) OpeningTransaction() *Transaction {
	if d.WalletID == nil {
		return nil
	}

	kind, category := TransactionKindExpense, "Lent Money"
	if d.Type == DueTypeTake {
		kind, category = TransactionKindIncome, "Borrowed Money"
	}

	return d.transaction(kind, category, d.DueDate)
}

// SettlementTransaction returns the offsetting wallet transaction recorded
// when the due is settled at the given time, or nil when no wallet is linked.
func (d *Due) SettlementTransaction(at time.Time) *Transaction {
	if d.WalletID == nil {
		return nil
	}

	kind, category := TransactionKindIncome, "Debt Repayment Received"
	if d.Type == DueTypeTake {
		kind, category = TransactionKindExpense, "Debt Repayment Paid"
	}

	return d.transaction(kind, category, at)
}

func (d *Due) transaction(kind TransactionKind, category string, at time.Time) *Transaction {
	dueID := d.ID
	notes := d.PersonName
	if d.Reason != "" {
		notes += ": " + d.Reason
	}

	return &Transaction{
		EffectiveDate: at,
		DueID:         &dueID,
		WalletID:      *d.WalletID,
		UserID:        d.UserID,
		Category:      category,
		Notes:         notes,
		Kind:          kind,
		Amount:        d.Amount,
	}
}
