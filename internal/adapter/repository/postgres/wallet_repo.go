package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/postgres/generated"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

var _ usecase.WalletRepository = (*WalletRepository)(nil)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	queries *generated.Queries
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db generated.DBTX) *WalletRepository {
	return &WalletRepository{queries: generated.New(db)}
}

// Create creates a new wallet.
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	err := r.queries.CreateWallet(ctx, generated.CreateWalletParams{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Name:      wallet.Name,
		Kind:      string(wallet.Kind),
		CreatedAt: timeToPgTimestamptz(wallet.CreatedAt),
	})

	return domain.NewStoreError("create wallet", err)
}

// GetByID retrieves a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	row, err := r.queries.GetWalletByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, domain.NewStoreError("get wallet", err)
	}

	return rowToWallet(row), nil
}

// ListByUser returns the user's wallets in creation order.
func (r *WalletRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Wallet, error) {
	rows, err := r.queries.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewStoreError("list wallets", err)
	}

	wallets := make([]*domain.Wallet, len(rows))
	for i, row := range rows {
		wallets[i] = rowToWallet(row)
	}

	return wallets, nil
}

func rowToWallet(row generated.Wallet) *domain.Wallet {
	return &domain.Wallet{
		CreatedAt: row.CreatedAt.Time.UTC(),
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Kind:      domain.WalletKind(row.Kind),
	}
}
