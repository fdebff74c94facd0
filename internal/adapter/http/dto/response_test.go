package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

func TestLedgerSyncFromUseCase(t *testing.T) {
	month := domain.MonthKey{Year: 2024, Month: time.February}
	sync := &usecase.LedgerSync{
		Balance: &domain.MonthlyBalance{
			WalletID:       "w1",
			Month:          month,
			OpeningBalance: decimal.RequireFromString("800"),
			TotalIncome:    decimal.Zero,
			TotalExpense:   decimal.Zero,
			ClosingBalance: decimal.RequireFromString("800"),
		},
		WalletID:       "w1",
		Month:          month,
		MonthsCascaded: 1,
		Stale:          true,
	}

	resp := LedgerSyncFromUseCase(sync)
	if resp.Month != "2024-02" || !resp.Stale || resp.Balance.ClosingBalance.String() != "800" {
		t.Fatalf("unexpected ledger sync response: %+v", resp)
	}

	if LedgerSyncFromUseCase(nil) != nil {
		t.Fatalf("expected nil for nil sync")
	}
}

func TestMonthlyBalanceResponse_JSONUsesDecimalStrings(t *testing.T) {
	resp := MonthlyBalanceFromDomain(&domain.MonthlyBalance{
		WalletID:       "w1",
		Month:          domain.MonthKey{Year: 2024, Month: time.January},
		OpeningBalance: decimal.Zero,
		TotalIncome:    decimal.RequireFromString("1000.10"),
		TotalExpense:   decimal.RequireFromString("200"),
		ClosingBalance: decimal.RequireFromString("800.10"),
	})

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(b)
	for _, want := range []string{`"month":"2024-01"`, `"closing_balance":"800.1"`, `"total_income":"1000.1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestDueResultFromUseCase_WithoutWallet(t *testing.T) {
	resp := DueResultFromUseCase(&usecase.DueResult{
		Due: &domain.Due{ID: "d1", Type: domain.DueTypeGive, Status: domain.DueStatusPending, Amount: decimal.NewFromInt(20)},
	})

	if resp.Transaction != nil || resp.Ledger != nil || resp.Due.Status != "PENDING" {
		t.Fatalf("unexpected due response: %+v", resp)
	}
}

func TestMonthSummaryFromUseCase(t *testing.T) {
	resp := MonthSummaryFromUseCase(&usecase.MonthSummary{
		ByKind: map[domain.WalletKind]*usecase.KindSummary{
			domain.WalletKindBank: {Opening: decimal.NewFromInt(10), Closing: decimal.NewFromInt(5)},
		},
		Month:   domain.MonthKey{Year: 2024, Month: time.June},
		Wallets: 1,
	})

	if resp.Month != "2024-06" || resp.ByKind["BANK"] == nil || resp.ByKind["BANK"].Closing.String() != "5" {
		t.Fatalf("unexpected summary response: %+v", resp)
	}
}

func TestWalletBalancesFromUseCase_FlattensWallet(t *testing.T) {
	list := WalletBalancesFromUseCase([]*usecase.WalletBalance{{
		Wallet:  &domain.Wallet{ID: "w1", Name: "Cash", Kind: domain.WalletKindCash},
		Balance: &domain.MonthlyBalance{WalletID: "w1", ClosingBalance: decimal.NewFromInt(3)},
	}})

	b, err := json.Marshal(NewListResponse(list))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(b)
	if !strings.Contains(body, `"id":"w1"`) || !strings.Contains(body, `"count":1`) {
		t.Fatalf("unexpected body: %s", body)
	}
}
