package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	s *Store
}

func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w := *wallet
	r.s.wallets[w.ID] = &w
	return nil
}

func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.wallets[id]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}

	out := *w
	return &out, nil
}

// ListByUser returns the user's wallets, oldest first.
func (r *WalletRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wallets := make([]*domain.Wallet, 0)
	for _, w := range r.s.wallets {
		if w.UserID != userID {
			continue
		}
		out := *w
		wallets = append(wallets, &out)
	}

	sort.Slice(wallets, func(i, j int) bool {
		if !wallets[i].CreatedAt.Equal(wallets[j].CreatedAt) {
			return wallets[i].CreatedAt.Before(wallets[j].CreatedAt)
		}
		return wallets[i].ID < wallets[j].ID
	})

	return wallets, nil
}

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	s *Store
}

func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}

	record := *t
	return mtx.add(func(s *Store) (func(), error) {
		if _, ok := s.wallets[record.WalletID]; !ok {
			return nil, domain.ErrWalletNotFound
		}

		s.transactions[record.ID] = &record
		prev := s.txByWallet[record.WalletID]
		s.txByWallet[record.WalletID] = append(prev, record.ID)

		return func() {
			delete(s.transactions, record.ID)
			s.txByWallet[record.WalletID] = prev
		}, nil
	})
}

// SumByKindInRange totals the wallet's transactions of kind in [start, end).
func (r *TransactionRepository) SumByKindInRange(ctx context.Context, walletID string, kind domain.TransactionKind, start, end time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, id := range r.s.txByWallet[walletID] {
		t := r.s.transactions[id]
		if t.Kind == kind && inRange(t.EffectiveDate, start, end) {
			total = total.Add(t.Amount)
		}
	}

	return total, nil
}

// List returns matching transactions, newest effective date first.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.WalletID != "" && t.WalletID != filter.WalletID {
			continue
		}
		if filter.Month != nil && !filter.Month.Contains(t.EffectiveDate) {
			continue
		}
		out := *t
		result = append(result, &out)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.EffectiveDate.Equal(b.EffectiveDate) {
			return a.EffectiveDate.After(b.EffectiveDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (r *TransactionRepository) SumSpending(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range r.s.transactions {
		if t.UserID == userID && t.Kind == domain.TransactionKindExpense &&
			!t.IsTransferLeg() && inRange(t.EffectiveDate, start, end) {
			total = total.Add(t.Amount)
		}
	}

	return total, nil
}

func (r *TransactionRepository) SumTransfers(ctx context.Context, userID string, kind domain.TransactionKind, start, end time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range r.s.transactions {
		if t.UserID == userID && t.Kind == kind && t.IsTransferLeg() && inRange(t.EffectiveDate, start, end) {
			total = total.Add(t.Amount)
		}
	}

	return total, nil
}

// SumByCategory groups by category. Ordering is left to the caller.
func (r *TransactionRepository) SumByCategory(ctx context.Context, userID string, kind domain.TransactionKind, start, end time.Time) ([]domain.CategoryTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byCategory := make(map[string]*domain.CategoryTotal)
	for _, t := range r.s.transactions {
		if t.UserID != userID || t.Kind != kind || t.IsTransferLeg() || !inRange(t.EffectiveDate, start, end) {
			continue
		}

		ct, ok := byCategory[t.Category]
		if !ok {
			ct = &domain.CategoryTotal{Category: t.Category, Total: decimal.Zero}
			byCategory[t.Category] = ct
		}
		ct.Total = ct.Total.Add(t.Amount)
		ct.Count++
	}

	totals := make([]domain.CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		totals = append(totals, *ct)
	}

	return totals, nil
}

// MonthlyBalanceRepository implements usecase.MonthlyBalanceRepository.
type MonthlyBalanceRepository struct {
	s *Store
}

func (r *MonthlyBalanceRepository) Find(ctx context.Context, walletID string, month domain.MonthKey) (*domain.MonthlyBalance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.balances[walletID][month]
	if !ok {
		return nil, domain.ErrMonthlyBalanceNotFound
	}

	out := *b
	return &out, nil
}

func (r *MonthlyBalanceRepository) Create(ctx context.Context, balance *domain.MonthlyBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	months := r.s.walletBalances(balance.WalletID)
	if _, ok := months[balance.Month]; ok {
		return domain.ErrMonthlyBalanceExists
	}

	b := *balance
	months[b.Month] = &b
	return nil
}

func (r *MonthlyBalanceRepository) Upsert(ctx context.Context, balance *domain.MonthlyBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	months := r.s.walletBalances(balance.WalletID)
	if existing, ok := months[balance.Month]; ok {
		balance.CreatedAt = existing.CreatedAt
	}

	b := *balance
	months[b.Month] = &b
	return nil
}

func (r *MonthlyBalanceRepository) FindLatest(ctx context.Context, walletID string, notAfter domain.MonthKey) (*domain.MonthlyBalance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *domain.MonthlyBalance
	for month, b := range r.s.balances[walletID] {
		if month.After(notAfter) {
			continue
		}
		if latest == nil || month.After(latest.Month) {
			latest = b
		}
	}

	if latest == nil {
		return nil, domain.ErrMonthlyBalanceNotFound
	}

	out := *latest
	return &out, nil
}

// ListByWallets returns snapshots in [from, to] ordered by wallet then month.
func (r *MonthlyBalanceRepository) ListByWallets(ctx context.Context, walletIDs []string, from, to domain.MonthKey) ([]*domain.MonthlyBalance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.MonthlyBalance, 0)
	for _, id := range walletIDs {
		for month, b := range r.s.balances[id] {
			if month.Before(from) || month.After(to) {
				continue
			}
			out := *b
			result = append(result, &out)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].WalletID != result[j].WalletID {
			return result[i].WalletID < result[j].WalletID
		}
		return result[i].Month.Before(result[j].Month)
	})

	return result, nil
}

// walletBalances must be called with s.mu held for writing.
func (s *Store) walletBalances(walletID string) map[domain.MonthKey]*domain.MonthlyBalance {
	months, ok := s.balances[walletID]
	if !ok {
		months = make(map[domain.MonthKey]*domain.MonthlyBalance)
		s.balances[walletID] = months
	}
	return months
}

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	s *Store
}

func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}

	record := *transfer
	return mtx.add(func(s *Store) (func(), error) {
		s.transfers[record.ID] = &record
		return func() { delete(s.transfers, record.ID) }, nil
	})
}

func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.transfers[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}

	out := *t
	return &out, nil
}

// DueRepository implements usecase.DueRepository.
type DueRepository struct {
	s *Store
}

func (r *DueRepository) Create(ctx context.Context, tx usecase.Transaction, due *domain.Due) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}

	record := *due
	return mtx.add(func(s *Store) (func(), error) {
		s.dues[record.ID] = &record
		return func() { delete(s.dues, record.ID) }, nil
	})
}

// GetByIDForUpdate reads the committed due. The pending check is repeated by
// MarkSettled at commit time, so two racing settlements cannot both succeed.
func (r *DueRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Due, error) {
	if _, err := asTx(tx); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.dues[id]
	if !ok {
		return nil, domain.ErrDueNotFound
	}

	out := *d
	return &out, nil
}

func (r *DueRepository) MarkSettled(ctx context.Context, tx usecase.Transaction, id string, settledAt time.Time) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}

	return mtx.add(func(s *Store) (func(), error) {
		d, ok := s.dues[id]
		if !ok {
			return nil, domain.ErrDueNotFound
		}
		if d.Status != domain.DueStatusPending {
			return nil, domain.ErrDueAlreadySettled
		}

		prev := *d
		at := settledAt
		d.Status = domain.DueStatusSettled
		d.SettledAt = &at

		return func() { *d = prev }, nil
	})
}

// ListByUser returns pending dues by due date and settled dues most recently
// settled first.
func (r *DueRepository) ListByUser(ctx context.Context, userID string, status domain.DueStatus) ([]*domain.Due, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	dues := make([]*domain.Due, 0)
	for _, d := range r.s.dues {
		if d.UserID == userID && d.Status == status {
			out := *d
			dues = append(dues, &out)
		}
	}

	sort.Slice(dues, func(i, j int) bool {
		a, b := dues[i], dues[j]
		if status == domain.DueStatusSettled && a.SettledAt != nil && b.SettledAt != nil && !a.SettledAt.Equal(*b.SettledAt) {
			return a.SettledAt.After(*b.SettledAt)
		}
		if status == domain.DueStatusPending && !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.ID < b.ID
	})

	return dues, nil
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
