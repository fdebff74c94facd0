package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/dto"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

type walletServiceStub struct {
	createFn    func(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	getFn       func(ctx context.Context, userID, walletID string) (*domain.Wallet, error)
	listFn      func(ctx context.Context, userID string, asOf time.Time) ([]*usecase.WalletBalance, error)
	monthlyFn   func(ctx context.Context, userID, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error)
	recomputeFn func(ctx context.Context, userID, walletID string, month domain.MonthKey) (*usecase.LedgerSync, error)
	latestFn    func(ctx context.Context, userID, walletID string) (*domain.MonthlyBalance, error)
	checkFn     func(ctx context.Context, userID, walletID string, from, to domain.MonthKey) (*usecase.ChainReport, error)
}

func (s *walletServiceStub) CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error) {
	return s.createFn(ctx, input)
}

func (s *walletServiceStub) GetWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	return s.getFn(ctx, userID, walletID)
}

func (s *walletServiceStub) ListWallets(ctx context.Context, userID string, asOf time.Time) ([]*usecase.WalletBalance, error) {
	return s.listFn(ctx, userID, asOf)
}

func (s *walletServiceStub) MonthlyLedger(ctx context.Context, userID, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	return s.monthlyFn(ctx, userID, walletID, month)
}

func (s *walletServiceStub) Recompute(ctx context.Context, userID, walletID string, month domain.MonthKey) (*usecase.LedgerSync, error) {
	return s.recomputeFn(ctx, userID, walletID, month)
}

func (s *walletServiceStub) LatestBalance(ctx context.Context, userID, walletID string) (*domain.MonthlyBalance, error) {
	return s.latestFn(ctx, userID, walletID)
}

func (s *walletServiceStub) CheckChain(ctx context.Context, userID, walletID string, from, to domain.MonthKey) (*usecase.ChainReport, error) {
	return s.checkFn(ctx, userID, walletID, from, to)
}

func TestWalletHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateWalletInput
	h := NewWalletHandler(&walletServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error) {
			captured = input
			return &domain.Wallet{ID: "w1", UserID: input.UserID, Name: input.Name, Kind: input.Kind}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateWalletRequest{Name: "HDFC", Kind: "bank"})
	req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body)), testUserID)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != testUserID || captured.Kind != domain.WalletKindBank {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.WalletResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "w1" || resp.Kind != "BANK" {
		t.Fatalf("unexpected wallet response: %+v", resp)
	}
}

func TestWalletHandler_Create_InvalidKind(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error) {
			t.Fatal("CreateWallet should not be called for an invalid kind")
			return nil, nil
		},
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewBufferString(`{"name":"X","kind":"CRYPTO"}`)), testUserID)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_Create_InvalidJSON(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{})

	req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewBufferString("{invalid json")), testUserID)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_List_AsOf(t *testing.T) {
	var gotAsOf time.Time
	h := NewWalletHandler(&walletServiceStub{
		listFn: func(ctx context.Context, userID string, asOf time.Time) ([]*usecase.WalletBalance, error) {
			gotAsOf = asOf
			return []*usecase.WalletBalance{{
				Wallet:  &domain.Wallet{ID: "w1", Kind: domain.WalletKindCash},
				Balance: &domain.MonthlyBalance{WalletID: "w1", ClosingBalance: decimal.NewFromInt(800)},
			}}, nil
		},
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/wallets?as_of=2024-02-10", nil), testUserID)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotAsOf.Equal(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected as_of: %v", gotAsOf)
	}

	var resp struct {
		Items []struct {
			ID      string `json:"id"`
			Balance struct {
				ClosingBalance string `json:"closing_balance"`
			} `json:"balance"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Balance.ClosingBalance != "800" {
		t.Fatalf("unexpected list response: %s", rec.Body.String())
	}
}

func TestWalletHandler_Get_NotFound(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		getFn: func(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
			if walletID != "w9" {
				t.Fatalf("unexpected wallet id %q", walletID)
			}
			return nil, domain.ErrWalletNotFound
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/wallets/w9", nil), "id", "w9")
	rec := httptest.NewRecorder()

	h.Get(rec, asUser(req, testUserID))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWalletHandler_Monthly(t *testing.T) {
	tests := []struct {
		name       string
		month      string
		wantStatus int
	}{
		{name: "valid month", month: "2024-02", wantStatus: http.StatusOK},
		{name: "malformed month", month: "2024-2", wantStatus: http.StatusBadRequest},
		{name: "month out of range", month: "2024-13", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWalletHandler(&walletServiceStub{
				monthlyFn: func(ctx context.Context, userID, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
					return &domain.MonthlyBalance{WalletID: walletID, Month: month, OpeningBalance: decimal.NewFromInt(800), ClosingBalance: decimal.NewFromInt(800)}, nil
				},
			})

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "w1", "month", tt.month)
			rec := httptest.NewRecorder()

			h.Monthly(rec, asUser(req, testUserID))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp dto.MonthlyBalanceResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Month != "2024-02" || !resp.OpeningBalance.Equal(decimal.NewFromInt(800)) {
				t.Fatalf("unexpected monthly response: %+v", resp)
			}
		})
	}
}

func TestWalletHandler_Recompute(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		recomputeFn: func(ctx context.Context, userID, walletID string, month domain.MonthKey) (*usecase.LedgerSync, error) {
			return &usecase.LedgerSync{WalletID: walletID, Month: month, MonthsCascaded: 3, CascadeLimitReached: true}, nil
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/", nil), "id", "w1", "month", "2024-01")
	rec := httptest.NewRecorder()

	h.Recompute(rec, asUser(req, testUserID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.LedgerSyncResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MonthsCascaded != 3 || !resp.CascadeLimitReached || resp.Month != "2024-01" {
		t.Fatalf("unexpected sync response: %+v", resp)
	}
}

func TestWalletHandler_LatestBalance_NoSnapshot(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		latestFn: func(ctx context.Context, userID, walletID string) (*domain.MonthlyBalance, error) {
			return nil, domain.ErrMonthlyBalanceNotFound
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "w1")
	rec := httptest.NewRecorder()

	h.LatestBalance(rec, asUser(req, testUserID))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWalletHandler_Check(t *testing.T) {
	var gotFrom, gotTo domain.MonthKey
	stub := &walletServiceStub{
		checkFn: func(ctx context.Context, userID, walletID string, from, to domain.MonthKey) (*usecase.ChainReport, error) {
			if to.Before(from) {
				return nil, domain.ErrInvalidRange
			}
			gotFrom, gotTo = from, to
			feb := domain.MonthKey{Year: 2024, Month: time.February}
			return &usecase.ChainReport{
				WalletID: walletID,
				From:     from,
				To:       to,
				Checked:  2,
				Issues: []usecase.ChainIssue{{
					Month:    feb,
					Problems: []string{usecase.ChainOutdated},
					Recorded: domain.NewMonthlyBalance(walletID, feb, decimal.NewFromInt(100), time.Now()),
					Expected: domain.NewMonthlyBalance(walletID, feb, decimal.NewFromInt(70), time.Now()),
				}},
			}, nil
		},
	}
	h := NewWalletHandler(stub)
	h.now = func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFrom   string
		wantTo     string
	}{
		{name: "defaults to the last twelve months", query: "", wantStatus: http.StatusOK, wantFrom: "2023-07", wantTo: "2024-06"},
		{name: "explicit range", query: "?from=2024-01&to=2024-03", wantStatus: http.StatusOK, wantFrom: "2024-01", wantTo: "2024-03"},
		{name: "invalid from", query: "?from=2024-13", wantStatus: http.StatusBadRequest},
		{name: "reversed range", query: "?from=2024-05&to=2024-04", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withURLParams(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil), "id", "w1")
			rec := httptest.NewRecorder()

			h.Check(rec, asUser(req, testUserID))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			if gotFrom.String() != tt.wantFrom || gotTo.String() != tt.wantTo {
				t.Fatalf("expected %s..%s, got %s..%s", tt.wantFrom, tt.wantTo, gotFrom, gotTo)
			}

			var resp dto.ChainReportResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Healthy || len(resp.Issues) != 1 || resp.Issues[0].Month != "2024-02" {
				t.Fatalf("unexpected report: %+v", resp)
			}
			if !resp.Issues[0].Expected.ClosingBalance.Equal(decimal.NewFromInt(70)) {
				t.Fatalf("unexpected expected snapshot: %+v", resp.Issues[0].Expected)
			}
		})
	}
}
