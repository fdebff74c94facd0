package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	baseURL string
	timeout time.Duration
	userID  string
	token   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "spendwise-cli",
		Short:         "SpendWise CLI tool",
		Long:          `A command line interface for interacting with the SpendWise API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("SPENDWISE_URL", "http://localhost:8080"), "Base URL of the SpendWise API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.userID, "user", os.Getenv("SPENDWISE_USER"), "User ID sent as X-User-ID when auth is disabled")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("SPENDWISE_TOKEN"), "Bearer token when auth is enabled")

	rootCmd.AddCommand(newLedgerCmd(opts), newInsightsCmd(opts), newTokenCmd())

	return rootCmd
}

func newLedgerCmd(opts *options) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Monthly ledger operations",
	}

	monthCmd := &cobra.Command{
		Use:   "month <wallet-id> <YYYY-MM>",
		Short: "Show the monthly snapshot of a wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMonth(cmd, newClient(opts), args[0], args[1])
		},
	}

	recomputeCmd := &cobra.Command{
		Use:   "recompute <wallet-id> <YYYY-MM>",
		Short: "Recompute a month and cascade into later months",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recompute(cmd, newClient(opts), args[0], args[1])
		},
	}

	var from, to string
	checkCmd := &cobra.Command{
		Use:   "check <wallet-id>",
		Short: "Reconcile a wallet's monthly snapshots against its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkChain(cmd, newClient(opts), args[0], from, to)
		},
	}
	checkCmd.Flags().StringVar(&from, "from", "", "First month to check (YYYY-MM)")
	checkCmd.Flags().StringVar(&to, "to", "", "Last month to check (YYYY-MM), defaults to the current month")

	ledgerCmd.AddCommand(monthCmd, recomputeCmd, checkCmd)
	return ledgerCmd
}

func newInsightsCmd(opts *options) *cobra.Command {
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Spending insights",
	}

	burnRateCmd := &cobra.Command{
		Use:   "burn-rate",
		Short: "Show monthly burn rate and runway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showBurnRate(cmd, newClient(opts))
		},
	}

	insightsCmd.AddCommand(burnRateCmd)
	return insightsCmd
}

func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		secret string
		ttl    time.Duration
	)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Access token utilities",
	}

	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed access token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return issueToken(cmd, userID, email, secret, ttl)
		},
	}
	issueCmd.Flags().StringVar(&userID, "user", "", "User ID to issue the token for")
	issueCmd.Flags().StringVar(&email, "email", "", "Optional email claim")
	issueCmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "Signing secret (defaults to JWT_SECRET)")
	issueCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = issueCmd.MarkFlagRequired("user")

	tokenCmd.AddCommand(issueCmd)
	return tokenCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
