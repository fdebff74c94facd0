package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletFromDomain converts domain wallet to response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		Name:      w.Name,
		Kind:      string(w.Kind),
		CreatedAt: w.CreatedAt,
	}
}

// MonthlyBalanceResponse represents a monthly snapshot in API responses.
type MonthlyBalanceResponse struct {
	WalletID       string          `json:"wallet_id"`
	Month          string          `json:"month"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MonthlyBalanceFromDomain converts a domain snapshot to response.
func MonthlyBalanceFromDomain(b *domain.MonthlyBalance) *MonthlyBalanceResponse {
	if b == nil {
		return nil
	}

	return &MonthlyBalanceResponse{
		WalletID:       b.WalletID,
		Month:          b.Month.String(),
		OpeningBalance: b.OpeningBalance,
		TotalIncome:    b.TotalIncome,
		TotalExpense:   b.TotalExpense,
		ClosingBalance: b.ClosingBalance,
		UpdatedAt:      b.UpdatedAt,
	}
}

// WalletBalanceResponse is a wallet with its balance for the requested month.
type WalletBalanceResponse struct {
	*WalletResponse
	Balance *MonthlyBalanceResponse `json:"balance"`
}

// WalletBalancesFromUseCase converts listed wallets to responses.
func WalletBalancesFromUseCase(list []*usecase.WalletBalance) []*WalletBalanceResponse {
	result := make([]*WalletBalanceResponse, len(list))
	for i, wb := range list {
		result[i] = &WalletBalanceResponse{
			WalletResponse: WalletFromDomain(wb.Wallet),
			Balance:        MonthlyBalanceFromDomain(wb.Balance),
		}
	}
	return result
}

// LedgerSyncResponse reports how far the monthly chain was brought up to date.
type LedgerSyncResponse struct {
	WalletID            string                  `json:"wallet_id"`
	Month               string                  `json:"month"`
	Balance             *MonthlyBalanceResponse `json:"balance,omitempty"`
	MonthsCascaded      int                     `json:"months_cascaded"`
	CascadeLimitReached bool                    `json:"cascade_limit_reached"`
	Stale               bool                    `json:"stale"`
}

// LedgerSyncFromUseCase converts a ledger sync to response.
func LedgerSyncFromUseCase(s *usecase.LedgerSync) *LedgerSyncResponse {
	if s == nil {
		return nil
	}

	return &LedgerSyncResponse{
		WalletID:            s.WalletID,
		Month:               s.Month.String(),
		Balance:             MonthlyBalanceFromDomain(s.Balance),
		MonthsCascaded:      s.MonthsCascaded,
		CascadeLimitReached: s.CascadeLimitReached,
		Stale:               s.Stale,
	}
}

// ChainIssueResponse is one month that does not reconcile.
type ChainIssueResponse struct {
	Month    string                  `json:"month"`
	Problems []string                `json:"problems"`
	Recorded *MonthlyBalanceResponse `json:"recorded"`
	Expected *MonthlyBalanceResponse `json:"expected"`
}

// ChainReportResponse is the result of a monthly chain check.
type ChainReportResponse struct {
	WalletID  string                `json:"wallet_id"`
	From      string                `json:"from"`
	To        string                `json:"to"`
	Checked   int                   `json:"months_checked"`
	Healthy   bool                  `json:"healthy"`
	Truncated bool                  `json:"truncated"`
	Issues    []*ChainIssueResponse `json:"issues"`
	CheckedAt time.Time             `json:"checked_at"`
}

// ChainReportFromUseCase converts a chain report to response.
func ChainReportFromUseCase(r *usecase.ChainReport) *ChainReportResponse {
	if r == nil {
		return nil
	}

	issues := make([]*ChainIssueResponse, len(r.Issues))
	for i, issue := range r.Issues {
		issues[i] = &ChainIssueResponse{
			Month:    issue.Month.String(),
			Problems: issue.Problems,
			Recorded: MonthlyBalanceFromDomain(issue.Recorded),
			Expected: MonthlyBalanceFromDomain(issue.Expected),
		}
	}

	return &ChainReportResponse{
		WalletID:  r.WalletID,
		From:      r.From.String(),
		To:        r.To.String(),
		Checked:   r.Checked,
		Healthy:   r.Healthy(),
		Truncated: r.Truncated,
		Issues:    issues,
		CheckedAt: r.CheckedAt,
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	WalletID      string          `json:"wallet_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Notes         string          `json:"notes,omitempty"`
	TransferID    *string         `json:"transfer_id,omitempty"`
	DueID         *string         `json:"due_id,omitempty"`
	EffectiveDate time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}

	return &TransactionResponse{
		ID:            t.ID,
		WalletID:      t.WalletID,
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		Category:      t.Category,
		Notes:         t.Notes,
		TransferID:    t.TransferID,
		DueID:         t.DueID,
		EffectiveDate: t.EffectiveDate,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// RecordTransactionResponse is a recorded transaction and its ledger outcome.
type RecordTransactionResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Ledger      *LedgerSyncResponse  `json:"ledger"`
}

// RecordTransactionFromUseCase converts a record result to response.
func RecordTransactionFromUseCase(r *usecase.RecordTransactionResult) *RecordTransactionResponse {
	return &RecordTransactionResponse{
		Transaction: TransactionFromDomain(r.Transaction),
		Ledger:      LedgerSyncFromUseCase(r.Ledger),
	}
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromWalletID  string          `json:"from_wallet_id"`
	ToWalletID    string          `json:"to_wallet_id"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
	EffectiveDate time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		FromWalletID:  t.FromWalletID,
		ToWalletID:    t.ToWalletID,
		Amount:        t.Amount,
		Notes:         t.Notes,
		EffectiveDate: t.EffectiveDate,
		CreatedAt:     t.CreatedAt,
	}
}

// TransferResultResponse is a transfer with both legs and both ledger outcomes.
type TransferResultResponse struct {
	Transfer   *TransferResponse    `json:"transfer"`
	Outgoing   *TransactionResponse `json:"outgoing"`
	Incoming   *TransactionResponse `json:"incoming"`
	FromLedger *LedgerSyncResponse  `json:"from_ledger"`
	ToLedger   *LedgerSyncResponse  `json:"to_ledger"`
}

// TransferResultFromUseCase converts a transfer result to response.
func TransferResultFromUseCase(r *usecase.TransferResult) *TransferResultResponse {
	return &TransferResultResponse{
		Transfer:   TransferFromDomain(r.Transfer),
		Outgoing:   TransactionFromDomain(r.Outgoing),
		Incoming:   TransactionFromDomain(r.Incoming),
		FromLedger: LedgerSyncFromUseCase(r.FromLedger),
		ToLedger:   LedgerSyncFromUseCase(r.ToLedger),
	}
}

// DueResponse represents a due in API responses.
type DueResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	PersonName string          `json:"person_name"`
	Reason     string          `json:"reason,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	WalletID   *string         `json:"wallet_id,omitempty"`
	DueDate    time.Time       `json:"date"`
	SettledAt  *time.Time      `json:"settled_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DueFromDomain converts domain due to response.
func DueFromDomain(d *domain.Due) *DueResponse {
	return &DueResponse{
		ID:         d.ID,
		Type:       string(d.Type),
		Status:     string(d.Status),
		PersonName: d.PersonName,
		Reason:     d.Reason,
		Amount:     d.Amount,
		WalletID:   d.WalletID,
		DueDate:    d.DueDate,
		SettledAt:  d.SettledAt,
		CreatedAt:  d.CreatedAt,
	}
}

// DuesFromDomain converts domain dues to responses.
func DuesFromDomain(dues []*domain.Due) []*DueResponse {
	result := make([]*DueResponse, len(dues))
	for i, d := range dues {
		result[i] = DueFromDomain(d)
	}
	return result
}

// DueResultResponse is a due with the wallet transaction it produced, if any.
type DueResultResponse struct {
	Due         *DueResponse         `json:"due"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Ledger      *LedgerSyncResponse  `json:"ledger,omitempty"`
}

// DueResultFromUseCase converts a due result to response.
func DueResultFromUseCase(r *usecase.DueResult) *DueResultResponse {
	return &DueResultResponse{
		Due:         DueFromDomain(r.Due),
		Transaction: TransactionFromDomain(r.Transaction),
		Ledger:      LedgerSyncFromUseCase(r.Ledger),
	}
}

// BurnRateResponse represents the burn rate insight.
type BurnRateResponse struct {
	TotalLiquid     decimal.Decimal `json:"total_liquid"`
	MonthlyBurnRate decimal.Decimal `json:"monthly_burn_rate"`
	Runway          decimal.Decimal `json:"runway_months"`
	WindowMonths    int             `json:"window_months"`
	Message         string          `json:"message"`
}

// BurnRateFromUseCase converts a burn rate to response.
func BurnRateFromUseCase(b *usecase.BurnRate) *BurnRateResponse {
	return &BurnRateResponse{
		TotalLiquid:     b.TotalLiquid,
		MonthlyBurnRate: b.MonthlyBurnRate,
		Runway:          b.Runway,
		WindowMonths:    b.WindowMonths,
		Message:         b.Message,
	}
}

// KindSummaryResponse aggregates the wallets of one kind.
type KindSummaryResponse struct {
	Opening decimal.Decimal `json:"opening"`
	Closing decimal.Decimal `json:"closing"`
}

// MonthSummaryResponse represents the dashboard view of a month.
type MonthSummaryResponse struct {
	Month        string                          `json:"month"`
	ByKind       map[string]*KindSummaryResponse `json:"by_kind"`
	TotalIncome  decimal.Decimal                 `json:"total_income"`
	TotalExpense decimal.Decimal                 `json:"total_expense"`
	TotalBalance decimal.Decimal                 `json:"total_balance"`
	Wallets      int                             `json:"wallets"`
}

// MonthSummaryFromUseCase converts a month summary to response.
func MonthSummaryFromUseCase(s *usecase.MonthSummary) *MonthSummaryResponse {
	byKind := make(map[string]*KindSummaryResponse, len(s.ByKind))
	for kind, ks := range s.ByKind {
		byKind[string(kind)] = &KindSummaryResponse{Opening: ks.Opening, Closing: ks.Closing}
	}

	return &MonthSummaryResponse{
		Month:        s.Month.String(),
		ByKind:       byKind,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		TotalBalance: s.TotalBalance,
		Wallets:      s.Wallets,
	}
}

// MonthTrendResponse is the income and expense of one month.
type MonthTrendResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// TrendFromUseCase converts a yearly trend to responses.
func TrendFromUseCase(trend []usecase.MonthTrend) []MonthTrendResponse {
	result := make([]MonthTrendResponse, len(trend))
	for i, mt := range trend {
		result[i] = MonthTrendResponse{Month: mt.Month.String(), Income: mt.Income, Expense: mt.Expense}
	}
	return result
}

// CategoryTotalResponse is the spending of one category.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// CategoriesFromDomain converts category totals to responses.
func CategoriesFromDomain(totals []domain.CategoryTotal) []CategoryTotalResponse {
	result := make([]CategoryTotalResponse, len(totals))
	for i, ct := range totals {
		result[i] = CategoryTotalResponse{Category: ct.Category, Total: ct.Total, Count: ct.Count}
	}
	return result
}

// ListResponse wraps a list with its size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse wraps items in a ListResponse.
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Count: len(items)}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
