package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	(&HealthHandler{}).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingFunc(func(ctx context.Context) error { return nil })
	down := PingFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		handler    *HealthHandler
		wantStatus int
	}{
		{name: "no dependencies", handler: NewHealthHandler(), wantStatus: http.StatusOK},
		{name: "all healthy", handler: NewHealthHandler().WithCheck("postgres", ok).WithCheck("redis", ok), wantStatus: http.StatusOK},
		{name: "redis down", handler: NewHealthHandler().WithCheck("postgres", ok).WithCheck("redis", down), wantStatus: http.StatusServiceUnavailable},
		{name: "nil check ignored", handler: NewHealthHandler().WithCheck("redis", nil), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
