package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/logger"
)

func TestLoggingMiddleware_AttachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(NewLoggingMiddleware(base).Wrap)
	r.Use(LocalIdentity("user-9"))
	r.Get("/wallets/{id}", func(w http.ResponseWriter, r *http.Request) {
		l := logger.FromContext(r.Context(), zerolog.Nop())
		l.Info().Msg("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wallets/w1", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected handler and access log lines, got %d: %s", len(lines), buf.String())
	}

	var inner, access map[string]any
	if err := json.Unmarshal(lines[0], &inner); err != nil {
		t.Fatalf("decode handler line: %v", err)
	}
	if err := json.Unmarshal(lines[1], &access); err != nil {
		t.Fatalf("decode access line: %v", err)
	}

	if inner["user_id"] != "user-9" || inner["request_id"] == nil {
		t.Fatalf("expected request scoped fields on handler log: %v", inner)
	}
	if access["route"] != "/wallets/{id}" || access["status"] != float64(http.StatusNoContent) {
		t.Fatalf("unexpected access log: %v", access)
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("panic recovered")) {
		t.Fatalf("expected panic to be logged, got %s", buf.String())
	}
}
