package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/dto"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// DueService describes due operations used by the handler.
type DueService interface {
	CreateDue(ctx context.Context, input usecase.CreateDueInput) (*usecase.DueResult, error)
	SettleDue(ctx context.Context, userID, dueID string) (*usecase.DueResult, error)
	ListActive(ctx context.Context, userID string) ([]*domain.Due, error)
	ListHistory(ctx context.Context, userID string) ([]*domain.Due, error)
}

// DueHandler handles money lent and borrowed.
type DueHandler struct {
	dueUC DueService
}

// NewDueHandler creates a new DueHandler.
func NewDueHandler(dueUC DueService) *DueHandler {
	return &DueHandler{dueUC: dueUC}
}

// Create handles POST /dues.
func (h *DueHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateDueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid due", err.Error())
		return
	}

	result, err := h.dueUC.CreateDue(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err, "failed to create due")
		return
	}

	writeJSON(w, http.StatusCreated, dto.DueResultFromUseCase(result))
}

// Settle handles POST /dues/{id}/settle.
func (h *DueHandler) Settle(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.dueUC.SettleDue(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to settle due")
		return
	}

	writeJSON(w, http.StatusOK, dto.DueResultFromUseCase(result))
}

// Active handles GET /dues/active.
func (h *DueHandler) Active(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.dueUC.ListActive)
}

// History handles GET /dues/history.
func (h *DueHandler) History(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.dueUC.ListHistory)
}

func (h *DueHandler) list(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) ([]*domain.Due, error)) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	dues, err := fn(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err, "failed to list dues")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.DuesFromDomain(dues)))
}
