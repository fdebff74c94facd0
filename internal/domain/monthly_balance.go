package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyBalance is the materialized balance of one wallet for one month.
// It is a memoized view over the wallet's transactions: created lazily with
// zero activity and rewritten by recomputation, never deleted.
type MonthlyBalance struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	WalletID       string
	Month          MonthKey
	OpeningBalance decimal.Decimal
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	ClosingBalance decimal.Decimal
}

// NewMonthlyBalance returns a snapshot with no aggregated activity, so its
// closing balance equals its opening balance.
func NewMonthlyBalance(walletID string, month MonthKey, opening decimal.Decimal, now time.Time) *MonthlyBalance {
	return &MonthlyBalance{
		CreatedAt:      now,
		UpdatedAt:      now,
		WalletID:       walletID,
		Month:          month,
		OpeningBalance: opening,
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		ClosingBalance: opening,
	}
}

// ClosingBalanceOf computes opening + income - expense.
func ClosingBalanceOf(opening, income, expense decimal.Decimal) decimal.Decimal {
	return opening.Add(income).Sub(expense)
}

// Apply overwrites the snapshot figures and derives the closing balance.
func (b *MonthlyBalance) Apply(opening, income, expense decimal.Decimal, now time.Time) {
	b.OpeningBalance = opening
	b.TotalIncome = income
	b.TotalExpense = expense
	b.ClosingBalance = ClosingBalanceOf(opening, income, expense)
	b.UpdatedAt = now
}

// Consistent reports whether the closing balance matches the totals.
func (b *MonthlyBalance) Consistent() bool {
	return b.ClosingBalance.Equal(ClosingBalanceOf(b.OpeningBalance, b.TotalIncome, b.TotalExpense))
}

// SameFigures reports whether two snapshots carry equal amounts.
func (b *MonthlyBalance) SameFigures(other *MonthlyBalance) bool {
	return other != nil &&
		b.OpeningBalance.Equal(other.OpeningBalance) &&
		b.TotalIncome.Equal(other.TotalIncome) &&
		b.TotalExpense.Equal(other.TotalExpense) &&
		b.ClosingBalance.Equal(other.ClosingBalance)
}
