package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/dto"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// WalletService describes wallet operations used by the handler.
type WalletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, userID string, asOf time.Time) ([]*usecase.WalletBalance, error)
	MonthlyLedger(ctx context.Context, userID, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error)
	Recompute(ctx context.Context, userID, walletID string, month domain.MonthKey) (*usecase.LedgerSync, error)
	LatestBalance(ctx context.Context, userID, walletID string) (*domain.MonthlyBalance, error)
	CheckChain(ctx context.Context, userID, walletID string, from, to domain.MonthKey) (*usecase.ChainReport, error)
}

// WalletHandler handles wallet and monthly ledger endpoints.
type WalletHandler struct {
	walletUC WalletService
	now      func() time.Time
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{
		walletUC: walletUC,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create handles POST /wallets.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateWalletRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wallet", err.Error())
		return
	}

	wallet, err := h.walletUC.CreateWallet(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err, "failed to create wallet")
		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// List handles GET /wallets. Balances are for the month of ?as_of, or the
// current month.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	asOf := h.now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		t, err := dto.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid as_of", err.Error())
			return
		}
		asOf = t
	}

	wallets, err := h.walletUC.ListWallets(r.Context(), userID, asOf)
	if err != nil {
		writeDomainError(w, r, err, "failed to list wallets")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.WalletBalancesFromUseCase(wallets)))
}

// Get handles GET /wallets/{id}.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get wallet")
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Monthly handles GET /wallets/{id}/monthly/{month}.
func (h *WalletHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	balance, err := h.walletUC.MonthlyLedger(r.Context(), userID, chi.URLParam(r, "id"), month)
	if err != nil {
		writeDomainError(w, r, err, "failed to get monthly ledger")
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyBalanceFromDomain(balance))
}

// Recompute handles POST /wallets/{id}/monthly/{month}/recompute.
func (h *WalletHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	sync, err := h.walletUC.Recompute(r.Context(), userID, chi.URLParam(r, "id"), month)
	if err != nil {
		writeDomainError(w, r, err, "failed to recompute ledger")
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerSyncFromUseCase(sync))
}

// LatestBalance handles GET /wallets/{id}/balance/latest.
func (h *WalletHandler) LatestBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	balance, err := h.walletUC.LatestBalance(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get latest balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyBalanceFromDomain(balance))
}

// Check handles GET /wallets/{id}/check. ?to defaults to the current month
// and ?from to eleven months before it.
func (h *WalletHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	to, ok := monthQueryParam(w, r, "to", domain.MonthOf(h.now()))
	if !ok {
		return
	}
	from, ok := monthQueryParam(w, r, "from", to.AddMonths(-11))
	if !ok {
		return
	}

	report, err := h.walletUC.CheckChain(r.Context(), userID, chi.URLParam(r, "id"), from, to)
	if err != nil {
		writeDomainError(w, r, err, "failed to check ledger")
		return
	}

	writeJSON(w, http.StatusOK, dto.ChainReportFromUseCase(report))
}
