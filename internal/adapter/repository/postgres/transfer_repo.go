package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/postgres/generated"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

var _ usecase.TransferRepository = (*TransferRepository)(nil)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(db generated.DBTX) *TransferRepository {
	return &TransferRepository{queries: generated.New(db)}
}

// Create inserts a transfer within tx.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	err := txQueries(tx).CreateTransfer(ctx, generated.CreateTransferParams{
		ID:            transfer.ID,
		UserID:        transfer.UserID,
		FromWalletID:  transfer.FromWalletID,
		ToWalletID:    transfer.ToWalletID,
		Amount:        decimalToNumeric(transfer.Amount),
		Notes:         transfer.Notes,
		EffectiveDate: timeToPgTimestamptz(transfer.EffectiveDate),
		CreatedAt:     timeToPgTimestamptz(transfer.CreatedAt),
	})
	if hasPgCode(err, pgErrForeignKeyViolation) {
		return domain.ErrWalletNotFound
	}

	return domain.NewStoreError("create transfer", err)
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	row, err := r.queries.GetTransferByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, domain.NewStoreError("get transfer", err)
	}

	return &domain.Transfer{
		CreatedAt:     row.CreatedAt.Time.UTC(),
		EffectiveDate: row.EffectiveDate.Time.UTC(),
		ID:            row.ID,
		UserID:        row.UserID,
		FromWalletID:  row.FromWalletID,
		ToWalletID:    row.ToWalletID,
		Notes:         row.Notes,
		Amount:        numericToDecimal(row.Amount),
	}, nil
}
