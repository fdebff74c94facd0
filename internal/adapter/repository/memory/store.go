// Package memory provides an in-memory implementation of the repositories,
// used for local development and tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

var (
	_ usecase.WalletRepository         = (*WalletRepository)(nil)
	_ usecase.TransactionRepository    = (*TransactionRepository)(nil)
	_ usecase.MonthlyBalanceRepository = (*MonthlyBalanceRepository)(nil)
	_ usecase.TransferRepository       = (*TransferRepository)(nil)
	_ usecase.DueRepository            = (*DueRepository)(nil)
	_ usecase.TransactionManager       = (*TxManager)(nil)
)

// ErrTxDone is returned when a finished transaction is used again.
var ErrTxDone = errors.New("memory: transaction already committed or rolled back")

// Store holds all data behind one RWMutex. Writes made through a Tx are
// buffered and applied atomically on Commit.
type Store struct {
	mu sync.RWMutex

	wallets      map[string]*domain.Wallet
	transactions map[string]*domain.Transaction
	// Per-wallet transaction IDs in insertion order
	txByWallet map[string][]string
	transfers  map[string]*domain.Transfer
	balances   map[string]map[domain.MonthKey]*domain.MonthlyBalance
	dues       map[string]*domain.Due
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		wallets:      make(map[string]*domain.Wallet),
		transactions: make(map[string]*domain.Transaction),
		txByWallet:   make(map[string][]string),
		transfers:    make(map[string]*domain.Transfer),
		balances:     make(map[string]map[domain.MonthKey]*domain.MonthlyBalance),
		dues:         make(map[string]*domain.Due),
	}
}

func (s *Store) Wallets() *WalletRepository                 { return &WalletRepository{s: s} }
func (s *Store) Transactions() *TransactionRepository       { return &TransactionRepository{s: s} }
func (s *Store) Transfers() *TransferRepository             { return &TransferRepository{s: s} }
func (s *Store) MonthlyBalances() *MonthlyBalanceRepository { return &MonthlyBalanceRepository{s: s} }
func (s *Store) Dues() *DueRepository                       { return &DueRepository{s: s} }
func (s *Store) TxManager() *TxManager                      { return &TxManager{s: s} }

// op mutates the store with s.mu held and returns a func that reverts it.
type op func(s *Store) (undo func(), err error)

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	s *Store
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{s: m.s}, nil
}

// Tx buffers writes until Commit.
type Tx struct {
	s    *Store
	mu   sync.Mutex
	ops  []op
	done bool
}

func (t *Tx) add(o op) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return ErrTxDone
	}

	t.ops = append(t.ops, o)
	return nil
}

// Commit applies the buffered writes in order. If one fails, the ones
// already applied are reverted and the error is returned.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return ErrTxDone
	}
	t.done = true

	if err := ctx.Err(); err != nil {
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	undos := make([]func(), 0, len(t.ops))
	for _, o := range t.ops {
		undo, err := o(t.s)
		if err != nil {
			for i := len(undos) - 1; i >= 0; i-- {
				undos[i]()
			}
			return err
		}
		undos = append(undos, undo)
	}

	return nil
}

// Rollback discards the buffered writes. Calling it after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done = true
	t.ops = nil
	return nil
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	mtx, ok := tx.(*Tx)
	if !ok || mtx == nil {
		return nil, errors.New("memory: foreign transaction")
	}
	return mtx, nil
}
