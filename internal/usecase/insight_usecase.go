package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
)

// RunwayUnbounded is reported when there is money but no spending.
var RunwayUnbounded = decimal.NewFromInt(999)

// Health messages for burn-rate insights.
const (
	HealthNoSpending = "Great! You are spending nothing."
	HealthCritical   = "CRITICAL: You are out of money in less than a month!"
	HealthWarning    = "WARNING: Less than 3 months of runway."
	HealthCaution    = "Caution: You have about 6 months of runway."
	HealthHealthy    = "Healthy: You have a solid financial runway."
)

// InsightUseCase derives reports from balances and transactions.
// It only reads.
type InsightUseCase struct {
	walletRepo     WalletRepository
	txRepo         TransactionRepository
	balanceRepo    MonthlyBalanceRepository
	ledger         *LedgerUseCase
	burnRateWindow int
	now            func() time.Time
}

// NewInsightUseCase creates a new InsightUseCase. A window <= 0 falls back
// to DefaultBurnRateWindow months.
func NewInsightUseCase(
	walletRepo WalletRepository,
	txRepo TransactionRepository,
	balanceRepo MonthlyBalanceRepository,
	ledger *LedgerUseCase,
	burnRateWindow int,
) *InsightUseCase {
	if burnRateWindow <= 0 {
		burnRateWindow = DefaultBurnRateWindow
	}

	return &InsightUseCase{
		walletRepo:     walletRepo,
		txRepo:         txRepo,
		balanceRepo:    balanceRepo,
		ledger:         ledger,
		burnRateWindow: burnRateWindow,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// BurnRate describes how long liquid money lasts at the recent spending pace.
type BurnRate struct {
	TotalLiquid     decimal.Decimal
	MonthlyBurnRate decimal.Decimal // rounded to 2 places
	Runway          decimal.Decimal // months, rounded to 1 place
	WindowMonths    int
	Message         string
}

// KindSummary aggregates the wallets of one kind for a month.
type KindSummary struct {
	Opening decimal.Decimal
	Closing decimal.Decimal
}

// MonthSummary is the dashboard view of a month across all wallets.
type MonthSummary struct {
	ByKind       map[domain.WalletKind]*KindSummary
	Month        domain.MonthKey
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalBalance decimal.Decimal
	Wallets      int
}

// MonthTrend is the income and expense of one month.
type MonthTrend struct {
	Month   domain.MonthKey
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// BurnRate computes liquid money, average monthly spending over the window
// and the resulting runway. Transfers between wallets are not spending.
func (uc *InsightUseCase) BurnRate(ctx context.Context, userID string) (*BurnRate, error) {
	now := uc.now()

	wallets, err := uc.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	liquid := make([]*domain.Wallet, 0, len(wallets))
	for _, w := range wallets {
		if w.Kind.IsLiquid() {
			liquid = append(liquid, w)
		}
	}

	balances, err := balancesAt(ctx, uc.ledger, liquid, now)
	if err != nil {
		return nil, err
	}

	totalLiquid := decimal.Zero
	for _, b := range balances {
		totalLiquid = totalLiquid.Add(b.Balance.ClosingBalance)
	}

	spent, err := uc.txRepo.SumSpending(ctx, userID, now.AddDate(0, -uc.burnRateWindow, 0), now.Add(time.Nanosecond))
	if err != nil {
		return nil, err
	}

	burn := spent.Div(decimal.NewFromInt(int64(uc.burnRateWindow)))
	runway := Runway(totalLiquid, burn)

	return &BurnRate{
		TotalLiquid:     totalLiquid,
		MonthlyBurnRate: burn.Round(2),
		Runway:          runway,
		WindowMonths:    uc.burnRateWindow,
		Message:         HealthMessage(runway),
	}, nil
}

// Runway returns liquid / burn in months rounded to one place,
// RunwayUnbounded when nothing is spent but money remains, zero otherwise.
func Runway(liquid, burn decimal.Decimal) decimal.Decimal {
	if burn.IsPositive() {
		return liquid.Div(burn).Round(1)
	}

	if liquid.IsPositive() {
		return RunwayUnbounded
	}

	return decimal.Zero
}

// HealthMessage classifies a runway.
func HealthMessage(runway decimal.Decimal) string {
	switch {
	case runway.Equal(RunwayUnbounded):
		return HealthNoSpending
	case runway.LessThan(decimal.NewFromInt(1)):
		return HealthCritical
	case runway.LessThan(decimal.NewFromInt(3)):
		return HealthWarning
	case runway.LessThan(decimal.NewFromInt(6)):
		return HealthCaution
	default:
		return HealthHealthy
	}
}

// Summary aggregates every wallet's snapshot for month, materializing
// snapshots where needed.
func (uc *InsightUseCase) Summary(ctx context.Context, userID string, month domain.MonthKey) (*MonthSummary, error) {
	wallets, err := uc.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances, err := balancesAt(ctx, uc.ledger, wallets, month.Start())
	if err != nil {
		return nil, err
	}

	summary := &MonthSummary{
		ByKind:       make(map[domain.WalletKind]*KindSummary),
		Month:        month,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalBalance: decimal.Zero,
		Wallets:      len(balances),
	}

	for _, wb := range balances {
		kind, ok := summary.ByKind[wb.Wallet.Kind]
		if !ok {
			kind = &KindSummary{Opening: decimal.Zero, Closing: decimal.Zero}
			summary.ByKind[wb.Wallet.Kind] = kind
		}

		kind.Opening = kind.Opening.Add(wb.Balance.OpeningBalance)
		kind.Closing = kind.Closing.Add(wb.Balance.ClosingBalance)

		summary.TotalIncome = summary.TotalIncome.Add(wb.Balance.TotalIncome)
		summary.TotalExpense = summary.TotalExpense.Add(wb.Balance.TotalExpense)
		summary.TotalBalance = summary.TotalBalance.Add(wb.Balance.ClosingBalance)
	}

	in, out, err := uc.transferTotals(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	summary.TotalIncome = summary.TotalIncome.Sub(in)
	summary.TotalExpense = summary.TotalExpense.Sub(out)

	return summary, nil
}

// Trend returns income and expense for each month of year from materialized
// snapshots. Months never materialized report zero.
func (uc *InsightUseCase) Trend(ctx context.Context, userID string, year int) ([]MonthTrend, error) {
	first, err := domain.NewMonthKey(year, time.January)
	if err != nil {
		return nil, err
	}
	last := first.AddMonths(11)

	wallets, err := uc.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	trend := make([]MonthTrend, 12)
	for i := range trend {
		trend[i] = MonthTrend{Month: first.AddMonths(i), Income: decimal.Zero, Expense: decimal.Zero}
	}

	if len(wallets) == 0 {
		return trend, nil
	}

	ids := make([]string, len(wallets))
	for i, w := range wallets {
		ids[i] = w.ID
	}

	balances, err := uc.balanceRepo.ListByWallets(ctx, ids, first, last)
	if err != nil {
		return nil, err
	}

	for _, b := range balances {
		if b.Month.Year != year {
			continue
		}

		i := int(b.Month.Month) - 1
		trend[i].Income = trend[i].Income.Add(b.TotalIncome)
		trend[i].Expense = trend[i].Expense.Add(b.TotalExpense)
	}

	for i := range trend {
		if trend[i].Income.IsZero() && trend[i].Expense.IsZero() {
			continue
		}

		in, out, err := uc.transferTotals(ctx, userID, trend[i].Month)
		if err != nil {
			return nil, err
		}
		trend[i].Income = trend[i].Income.Sub(in)
		trend[i].Expense = trend[i].Expense.Sub(out)
	}

	return trend, nil
}

// transferTotals returns the month's transfer legs so reports can net them
// out of snapshot figures, which include them.
func (uc *InsightUseCase) transferTotals(ctx context.Context, userID string, month domain.MonthKey) (decimal.Decimal, decimal.Decimal, error) {
	in, err := uc.txRepo.SumTransfers(ctx, userID, domain.TransactionKindIncome, month.Start(), month.End())
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	out, err := uc.txRepo.SumTransfers(ctx, userID, domain.TransactionKindExpense, month.Start(), month.End())
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return in, out, nil
}

// Categories groups the month's expenses by category, largest first.
// Transfer legs are excluded.
func (uc *InsightUseCase) Categories(ctx context.Context, userID string, month domain.MonthKey) ([]domain.CategoryTotal, error) {
	totals, err := uc.txRepo.SumByCategory(ctx, userID, domain.TransactionKindExpense, month.Start(), month.End())
	if err != nil {
		return nil, err
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})

	return totals, nil
}
