package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
)

// WalletUseCase handles wallets and their monthly ledger views.
type WalletUseCase struct {
	walletRepo WalletRepository
	ledger     *LedgerUseCase
	idGen      IDGenerator
	publisher  EventPublisher
	logger     zerolog.Logger
	now        func() time.Time
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	walletRepo WalletRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	publisher EventPublisher,
	logger zerolog.Logger,
) *WalletUseCase {
	return &WalletUseCase{
		walletRepo: walletRepo,
		ledger:     ledger,
		idGen:      idGen,
		publisher:  publisher,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	UserID string
	Name   string
	Kind   domain.WalletKind
}

// WalletBalance pairs a wallet with one of its monthly snapshots.
type WalletBalance struct {
	Wallet  *domain.Wallet
	Balance *domain.MonthlyBalance
}

// CreateWallet creates a new wallet.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	wallet := &domain.Wallet{
		CreatedAt: uc.now(),
		UserID:    input.UserID,
		Name:      strings.TrimSpace(input.Name),
		Kind:      input.Kind,
	}

	if err := wallet.Validate(); err != nil {
		return nil, err
	}

	wallet.ID = uc.idGen.Generate()

	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.publisher, nil, uc.logger, newEvent(uc.idGen, domain.AggregateTypeWallet, wallet.ID,
		domain.EventTypeWalletCreated, map[string]any{
			"wallet_id": wallet.ID,
			"name":      wallet.Name,
			"kind":      string(wallet.Kind),
		}, wallet.CreatedAt))

	return wallet, nil
}

// GetWallet retrieves a wallet owned by the user.
func (uc *WalletUseCase) GetWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	return ownedWallet(ctx, uc.walletRepo, userID, walletID)
}

// ListWallets lists the user's wallets with their snapshot for the month
// containing asOf, materializing it where needed.
func (uc *WalletUseCase) ListWallets(ctx context.Context, userID string, asOf time.Time) ([]*WalletBalance, error) {
	wallets, err := uc.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return balancesAt(ctx, uc.ledger, wallets, asOf)
}

// MonthlyLedger returns the snapshot of a month, materializing it if needed.
func (uc *WalletUseCase) MonthlyLedger(ctx context.Context, userID, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	if _, err := uc.GetWallet(ctx, userID, walletID); err != nil {
		return nil, err
	}

	return uc.ledger.EnsureMonth(ctx, walletID, month.Start())
}

// Recompute rebuilds a month from its transactions and cascades forward.
func (uc *WalletUseCase) Recompute(ctx context.Context, userID, walletID string, month domain.MonthKey) (*LedgerSync, error) {
	if _, err := uc.GetWallet(ctx, userID, walletID); err != nil {
		return nil, err
	}

	return uc.ledger.Resync(ctx, walletID, month)
}

// LatestBalance returns the most recent materialized snapshot up to now.
func (uc *WalletUseCase) LatestBalance(ctx context.Context, userID, walletID string) (*domain.MonthlyBalance, error) {
	if _, err := uc.GetWallet(ctx, userID, walletID); err != nil {
		return nil, err
	}

	return uc.ledger.LatestSnapshot(ctx, walletID, uc.now())
}

// CheckChain reconciles the wallet's snapshots between from and to.
func (uc *WalletUseCase) CheckChain(ctx context.Context, userID, walletID string, from, to domain.MonthKey) (*ChainReport, error) {
	if _, err := uc.GetWallet(ctx, userID, walletID); err != nil {
		return nil, err
	}

	return uc.ledger.CheckChain(ctx, walletID, from, to)
}

// balancesAt ensures the month containing asOf for every wallet, a few
// wallets at a time. The result keeps the order of wallets.
func balancesAt(ctx context.Context, ledger *LedgerUseCase, wallets []*domain.Wallet, asOf time.Time) ([]*WalletBalance, error) {
	result := make([]*WalletBalance, len(wallets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(walletFanout)

	for i, wallet := range wallets {
		g.Go(func() error {
			balance, err := ledger.EnsureMonth(gctx, wallet.ID, asOf)
			if err != nil {
				return err
			}

			result[i] = &WalletBalance{Wallet: wallet, Balance: balance}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
