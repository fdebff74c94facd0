package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/dto"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// InsightService describes the read-only dashboard queries.
type InsightService interface {
	BurnRate(ctx context.Context, userID string) (*usecase.BurnRate, error)
	Summary(ctx context.Context, userID string, month domain.MonthKey) (*usecase.MonthSummary, error)
	Trend(ctx context.Context, userID string, year int) ([]usecase.MonthTrend, error)
	Categories(ctx context.Context, userID string, month domain.MonthKey) ([]domain.CategoryTotal, error)
}

// InsightHandler handles insight endpoints.
type InsightHandler struct {
	insightUC InsightService
	now       func() time.Time
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightUC InsightService) *InsightHandler {
	return &InsightHandler{
		insightUC: insightUC,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BurnRate handles GET /insights/burn-rate.
func (h *InsightHandler) BurnRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	burn, err := h.insightUC.BurnRate(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err, "failed to compute burn rate")
		return
	}

	writeJSON(w, http.StatusOK, dto.BurnRateFromUseCase(burn))
}

// Summary handles GET /insights/summary?month=YYYY-MM.
func (h *InsightHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	month, ok := monthQuery(w, r, h.now())
	if !ok {
		return
	}

	summary, err := h.insightUC.Summary(r.Context(), userID, month)
	if err != nil {
		writeDomainError(w, r, err, "failed to build summary")
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthSummaryFromUseCase(summary))
}

// Trend handles GET /insights/trend?year=YYYY.
func (h *InsightHandler) Trend(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	year := h.now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "invalid year", raw)
			return
		}
		year = y
	}

	trend, err := h.insightUC.Trend(r.Context(), userID, year)
	if err != nil {
		writeDomainError(w, r, err, "failed to build trend")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.TrendFromUseCase(trend)))
}

// Categories handles GET /insights/categories?month=YYYY-MM.
func (h *InsightHandler) Categories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	month, ok := monthQuery(w, r, h.now())
	if !ok {
		return
	}

	totals, err := h.insightUC.Categories(r.Context(), userID, month)
	if err != nil {
		writeDomainError(w, r, err, "failed to group categories")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.CategoriesFromDomain(totals)))
}
