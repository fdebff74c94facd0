package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/postgres/generated"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

var _ usecase.DueRepository = (*DueRepository)(nil)

// DueRepository implements usecase.DueRepository.
type DueRepository struct {
	queries *generated.Queries
}

// NewDueRepository creates a new DueRepository.
func NewDueRepository(db generated.DBTX) *DueRepository {
	return &DueRepository{queries: generated.New(db)}
}

// Create inserts a due within tx.
func (r *DueRepository) Create(ctx context.Context, tx usecase.Transaction, due *domain.Due) error {
	err := txQueries(tx).CreateDue(ctx, generated.CreateDueParams{
		ID:         due.ID,
		UserID:     due.UserID,
		WalletID:   optionalText(due.WalletID),
		Type:       string(due.Type),
		Status:     string(due.Status),
		PersonName: due.PersonName,
		Reason:     due.Reason,
		Amount:     decimalToNumeric(due.Amount),
		DueDate:    timeToPgTimestamptz(due.DueDate),
		SettledAt:  optionalTimestamptz(due.SettledAt),
		CreatedAt:  timeToPgTimestamptz(due.CreatedAt),
	})
	if hasPgCode(err, pgErrForeignKeyViolation) {
		return domain.ErrWalletNotFound
	}

	return domain.NewStoreError("create due", err)
}

// GetByIDForUpdate retrieves a due with a FOR UPDATE lock.
func (r *DueRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Due, error) {
	row, err := txQueries(tx).GetDueByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDueNotFound
		}

		return nil, domain.NewStoreError("get due", err)
	}

	return rowToDue(row), nil
}

// MarkSettled moves a pending due to SETTLED.
func (r *DueRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, settledAt time.Time) error {
	updated, err := txQueries(tx).MarkDueSettled(ctx, generated.MarkDueSettledParams{
		ID:        id,
		SettledAt: timeToPgTimestamptz(settledAt),
	})
	if err != nil {
		return domain.NewStoreError("settle due", err)
	}

	if updated == 0 {
		return domain.ErrDueAlreadySettled
	}

	return nil
}

// ListByUser returns the user's dues in status. Pending dues are ordered by
// due date, settled ones by most recent settlement.
func (r *DueRepository) ListByUser(ctx context.Context, userID string, status domain.DueStatus) ([]*domain.Due, error) {
	var (
		rows []generated.Due
		err  error
	)
	if status == domain.DueStatusSettled {
		rows, err = r.queries.ListSettledDuesByUser(ctx, userID)
	} else {
		rows, err = r.queries.ListPendingDuesByUser(ctx, userID)
	}
	if err != nil {
		return nil, domain.NewStoreError("list dues", err)
	}

	dues := make([]*domain.Due, len(rows))
	for i, row := range rows {
		dues[i] = rowToDue(row)
	}

	return dues, nil
}

func rowToDue(row generated.Due) *domain.Due {
	return &domain.Due{
		CreatedAt:  row.CreatedAt.Time.UTC(),
		DueDate:    row.DueDate.Time.UTC(),
		SettledAt:  timestamptzPtr(row.SettledAt),
		WalletID:   textPtr(row.WalletID),
		ID:         row.ID,
		UserID:     row.UserID,
		PersonName: row.PersonName,
		Reason:     row.Reason,
		Type:       domain.DueType(row.Type),
		Status:     domain.DueStatus(row.Status),
		Amount:     numericToDecimal(row.Amount),
	}
}
