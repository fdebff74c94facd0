package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/dto"
	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/middleware"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/logger"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case domain.IsStoreError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps err to a response. Internal failures are logged and
// their details kept out of the body.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		l := logger.FromContext(r.Context(), zerolog.Nop())
		l.Error().Err(err).Str("path", r.URL.Path).Msg(message)
		writeError(w, status, message, "internal error")
		return
	}

	writeError(w, status, message, err.Error())
}

// decodeJSON decodes a bounded request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// currentUser returns the caller's ID, answering 401 when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok || user.ID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return "", false
	}
	return user.ID, true
}

// monthParam parses the {month} URL parameter.
func monthParam(w http.ResponseWriter, r *http.Request) (domain.MonthKey, bool) {
	month, err := domain.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return domain.MonthKey{}, false
	}
	return month, true
}

// monthQuery parses ?month=YYYY-MM, defaulting to the month of now.
func monthQuery(w http.ResponseWriter, r *http.Request, now time.Time) (domain.MonthKey, bool) {
	return monthQueryParam(w, r, "month", domain.MonthOf(now))
}

// monthQueryParam parses the YYYY-MM query parameter key, defaulting to def.
func monthQueryParam(w http.ResponseWriter, r *http.Request, key string, def domain.MonthKey) (domain.MonthKey, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}

	month, err := domain.ParseMonthKey(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+key, err.Error())
		return domain.MonthKey{}, false
	}
	return month, true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
