package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aditya-Sharma03/spendwise/internal/adapter/http/dto"
	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/auth"
)

// client is a thin SpendWise API client.
type client struct {
	http    *http.Client
	baseURL string
	userID  string
	token   string
}

func newClient(opts *options) *client {
	return &client{
		http:    &http.Client{Timeout: opts.timeout},
		baseURL: strings.TrimRight(opts.baseURL, "/"),
		userID:  opts.userID,
		token:   opts.token,
	}
}

func (c *client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			msg := apiErr.Error
			if apiErr.Message != "" {
				msg += ": " + apiErr.Message
			}
			return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func monthlyPath(walletID, month string) (string, error) {
	if _, err := domain.ParseMonthKey(month); err != nil {
		return "", err
	}
	return "/api/v1/wallets/" + url.PathEscape(walletID) + "/monthly/" + month, nil
}

func showMonth(cmd *cobra.Command, c *client, walletID, month string) error {
	path, err := monthlyPath(walletID, month)
	if err != nil {
		return err
	}

	var balance dto.MonthlyBalanceResponse
	if err := c.do(cmd.Context(), http.MethodGet, path, &balance); err != nil {
		return err
	}

	printBalance(cmd.OutOrStdout(), &balance)
	return nil
}

func recompute(cmd *cobra.Command, c *client, walletID, month string) error {
	path, err := monthlyPath(walletID, month)
	if err != nil {
		return err
	}

	var sync dto.LedgerSyncResponse
	if err := c.do(cmd.Context(), http.MethodPost, path+"/recompute", &sync); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sync.Balance != nil {
		printBalance(out, sync.Balance)
	}
	fmt.Fprintf(out, "Months recomputed: %d\n", sync.MonthsCascaded)
	if sync.CascadeLimitReached {
		fmt.Fprintln(out, "Cascade limit reached: later months are stale, recompute from the last month shown")
	}
	if sync.Stale {
		return errors.New("recompute left the ledger stale")
	}
	return nil
}

func checkChain(cmd *cobra.Command, c *client, walletID, from, to string) error {
	query := url.Values{}
	for key, month := range map[string]string{"from": from, "to": to} {
		if month == "" {
			continue
		}
		if _, err := domain.ParseMonthKey(month); err != nil {
			return err
		}
		query.Set(key, month)
	}

	path := "/api/v1/wallets/" + url.PathEscape(walletID) + "/check"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var report dto.ChainReportResponse
	if err := c.do(cmd.Context(), http.MethodGet, path, &report); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Checked %d months from %s to %s\n", report.Checked, report.From, report.To)
	if report.Truncated {
		fmt.Fprintln(out, "Range cut short at the cascade limit")
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(out, "%s  %s\n", issue.Month, strings.Join(issue.Problems, ", "))
		if issue.Recorded != nil && issue.Expected != nil {
			fmt.Fprintf(out, "         closing %s, expected %s\n",
				issue.Recorded.ClosingBalance.StringFixed(2), issue.Expected.ClosingBalance.StringFixed(2))
		}
	}

	if !report.Healthy {
		return fmt.Errorf("%d months do not reconcile, recompute from %s", len(report.Issues), report.Issues[0].Month)
	}
	fmt.Fprintln(out, "Ledger reconciles")
	return nil
}

func showBurnRate(cmd *cobra.Command, c *client) error {
	var burn dto.BurnRateResponse
	if err := c.do(cmd.Context(), http.MethodGet, "/api/v1/insights/burn-rate", &burn); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Liquid:      %s\n", burn.TotalLiquid.StringFixed(2))
	fmt.Fprintf(out, "Burn rate:   %s / month (last %d months)\n", burn.MonthlyBurnRate.StringFixed(2), burn.WindowMonths)
	fmt.Fprintf(out, "Runway:      %s months\n", burn.Runway.StringFixed(1))
	fmt.Fprintf(out, "%s\n", burn.Message)
	return nil
}

func issueToken(cmd *cobra.Command, userID, email, secret string, ttl time.Duration) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("--user is required")
	}
	if secret == "" {
		return errors.New("a signing secret is required (--secret or JWT_SECRET)")
	}

	token, err := auth.NewJWTManager(secret, ttl).Generate(&domain.User{ID: userID, Email: email})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func printBalance(w io.Writer, b *dto.MonthlyBalanceResponse) {
	fmt.Fprintf(w, "Wallet:      %s\n", b.WalletID)
	fmt.Fprintf(w, "Month:       %s\n", b.Month)
	fmt.Fprintf(w, "Opening:     %s\n", b.OpeningBalance.StringFixed(2))
	fmt.Fprintf(w, "Income:      %s\n", b.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "Expense:     %s\n", b.TotalExpense.StringFixed(2))
	fmt.Fprintf(w, "Closing:     %s\n", b.ClosingBalance.StringFixed(2))
}
