package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDue_Transactions(t *testing.T) {
	wallet := "wallet-1"
	created := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	settled := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		dueType        DueType
		openKind       TransactionKind
		openCategory   string
		settleKind     TransactionKind
		settleCategory string
	}{
		{"give", DueTypeGive, TransactionKindExpense, "Lent Money", TransactionKindIncome, "Debt Repayment Received"},
		{"take", DueTypeTake, TransactionKindIncome, "Borrowed Money", TransactionKindExpense, "Debt Repayment Paid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := &Due{
				ID:         "due-1",
				UserID:     "user-1",
				WalletID:   &wallet,
				Type:       tt.dueType,
				PersonName: "Sam",
				Amount:     decimal.NewFromInt(250),
				DueDate:    created,
			}

			open := due.OpeningTransaction()
			if open.Kind != tt.openKind || open.Category != tt.openCategory {
				t.Fatalf("unexpected opening transaction %+v", open)
			}
			if !open.EffectiveDate.Equal(created) || *open.DueID != "due-1" {
				t.Fatalf("opening transaction not linked to due date/id")
			}

			settle := due.SettlementTransaction(settled)
			if settle.Kind != tt.settleKind || settle.Category != tt.settleCategory {
				t.Fatalf("unexpected settlement transaction %+v", settle)
			}
			if open.Kind.Opposite() != settle.Kind {
				t.Fatalf("settlement must offset the opening transaction")
			}
			if !settle.EffectiveDate.Equal(settled) {
				t.Fatalf("settlement dated %s, want %s", settle.EffectiveDate, settled)
			}
		})
	}
}

func TestDue_WithoutWallet(t *testing.T) {
	due := &Due{Type: DueTypeGive, Amount: decimal.NewFromInt(10)}

	if due.OpeningTransaction() != nil || due.SettlementTransaction(time.Now()) != nil {
		t.Fatalf("expected no wallet transactions for unlinked due")
	}
}

func TestDue_Validate(t *testing.T) {
	valid := Due{
		Type:       DueTypeTake,
		PersonName: "Alex",
		Amount:     decimal.NewFromInt(20),
		DueDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid due, got %v", err)
	}

	badType := valid
	badType.Type = "LEND"
	if err := badType.Validate(); !errors.Is(err, ErrInvalidDueType) {
		t.Fatalf("expected ErrInvalidDueType, got %v", err)
	}

	noPerson := valid
	noPerson.PersonName = ""
	if err := noPerson.Validate(); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	if _, err := ParseDueType("give"); err != nil {
		t.Fatalf("expected lowercase type to parse, got %v", err)
	}
}

func TestMonthlyBalance_Apply(t *testing.T) {
	month := MonthKey{Year: 2024, Month: time.January}
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	b := NewMonthlyBalance("wallet-1", month, decimal.RequireFromString("100.10"), now)
	if !b.ClosingBalance.Equal(b.OpeningBalance) || !b.TotalIncome.IsZero() || !b.TotalExpense.IsZero() {
		t.Fatalf("new snapshot must carry no activity: %+v", b)
	}

	b.Apply(decimal.RequireFromString("100.10"), decimal.RequireFromString("0.20"), decimal.RequireFromString("0.10"), now)
	if !b.ClosingBalance.Equal(decimal.RequireFromString("100.20")) {
		t.Fatalf("closing = %s, want 100.20", b.ClosingBalance)
	}
	if !b.Consistent() {
		t.Fatalf("expected snapshot to be consistent")
	}
}
