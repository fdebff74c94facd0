package domain

import (
	"strings"
	"time"
)

// WalletKind classifies a wallet. The ledger treats every kind the same;
// insights use it to tell liquid money apart from savings.
type WalletKind string

const (
	WalletKindCash    WalletKind = "CASH"
	WalletKindBank    WalletKind = "BANK"
	WalletKindSavings WalletKind = "SAVINGS"
)

// ParseWalletKind normalizes and validates a wallet kind.
func ParseWalletKind(s string) (WalletKind, error) {
	kind := WalletKind(strings.ToUpper(strings.TrimSpace(s)))
	if !kind.Valid() {
		return "", ErrInvalidWalletKind
	}

	return kind, nil
}

func (k WalletKind) Valid() bool {
	switch k {
	case WalletKindCash, WalletKindBank, WalletKindSavings:
		return true
	}
	return false
}

// IsLiquid reports whether money in the wallet is spendable right away.
func (k WalletKind) IsLiquid() bool {
	return k == WalletKindCash || k == WalletKindBank
}

// Wallet is a container of money owned by one user.
type Wallet struct {
	CreatedAt time.Time
	ID        string
	UserID    string
	Name      string
	Kind      WalletKind
}

// Validate checks wallet invariants.
func (w *Wallet) Validate() error {
	if err := ValidateWalletName(w.Name); err != nil {
		return err
	}

	if !w.Kind.Valid() {
		return ErrInvalidWalletKind
	}

	if w.UserID == "" {
		return ErrMissingField
	}

	return nil
}

// OwnedBy reports whether userID owns the wallet.
func (w *Wallet) OwnedBy(userID string) bool {
	return w != nil && w.UserID == userID
}
