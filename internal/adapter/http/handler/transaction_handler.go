package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/dto"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// TransactionService describes transaction operations used by the handler.
type TransactionService interface {
	AddIncome(ctx context.Context, input usecase.RecordTransactionInput) (*usecase.RecordTransactionResult, error)
	AddExpense(ctx context.Context, input usecase.RecordTransactionInput) (*usecase.RecordTransactionResult, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	GetTransfer(ctx context.Context, userID, id string) (*domain.Transfer, error)
}

// TransactionHandler handles income, expense and transfer endpoints.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// AddIncome handles POST /transactions/income.
func (h *TransactionHandler) AddIncome(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.transactionUC.AddIncome, "failed to record income")
}

// AddExpense handles POST /transactions/expense.
func (h *TransactionHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.transactionUC.AddExpense, "failed to record expense")
}

func (h *TransactionHandler) record(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, usecase.RecordTransactionInput) (*usecase.RecordTransactionResult, error),
	failure string,
) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.RecordTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := fn(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, r, err, failure)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordTransactionFromUseCase(result))
}

// List handles GET /transactions?month=YYYY-MM&wallet_id=&limit=N.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	input := usecase.ListTransactionsInput{
		UserID:   userID,
		WalletID: r.URL.Query().Get("wallet_id"),
		Limit:    parseIntQuery(r, "limit", 0),
	}

	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := domain.ParseMonthKey(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month", err.Error())
			return
		}
		input.Month = &month
	}

	txs, err := h.transactionUC.ListTransactions(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.TransactionsFromDomain(txs)))
}

// CreateTransfer handles POST /transfers.
func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.transactionUC.Transfer(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, r, err, "failed to create transfer")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferResultFromUseCase(result))
}

// GetTransfer handles GET /transfers/{id}.
func (h *TransactionHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	transfer, err := h.transactionUC.GetTransfer(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get transfer")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}
