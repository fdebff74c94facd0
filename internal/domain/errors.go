package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every specific error below wraps exactly one of them so
// callers can branch on the category with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	// Wallet errors
	ErrWalletNotFound    = fmt.Errorf("%w: wallet", ErrNotFound)
	ErrInvalidWalletName = fmt.Errorf("%w: invalid wallet name", ErrValidation)
	ErrInvalidWalletKind = fmt.Errorf("%w: invalid wallet kind", ErrValidation)

	// Transaction errors
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrAmountTooLarge   = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
	ErrAmountTooSmall   = fmt.Errorf("%w: amount below minimum allowed", ErrValidation)
	ErrInvalidKind      = fmt.Errorf("%w: invalid transaction kind", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: invalid effective date", ErrValidation)
	ErrInvalidMonth     = fmt.Errorf("%w: invalid month, expected YYYY-MM", ErrValidation)
	ErrInvalidRange     = fmt.Errorf("%w: range ends before it starts", ErrValidation)
	ErrMissingField     = fmt.Errorf("%w: missing required field", ErrValidation)
	ErrFieldTooLong     = fmt.Errorf("%w: field too long", ErrValidation)
	ErrSameWallet       = fmt.Errorf("%w: cannot transfer to same wallet", ErrValidation)
	ErrTransferNotFound = fmt.Errorf("%w: transfer", ErrNotFound)

	// Monthly balance errors
	ErrMonthlyBalanceNotFound = fmt.Errorf("%w: monthly balance", ErrNotFound)
	ErrMonthlyBalanceExists   = fmt.Errorf("%w: monthly balance already exists", ErrConflict)

	// Due errors
	ErrDueNotFound       = fmt.Errorf("%w: due", ErrNotFound)
	ErrInvalidDueType    = fmt.Errorf("%w: invalid due type", ErrValidation)
	ErrDueAlreadySettled = fmt.Errorf("%w: due already settled", ErrConflict)

	// ErrCascadeLimitReached marks a cascade that stopped at its iteration
	// bound while later materialized months were still pending. It is
	// reported, never returned as a failure.
	ErrCascadeLimitReached = errors.New("cascade limit reached")
)

// StoreError wraps a failure of the underlying persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err unless it is nil or already a domain error.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrValidation) {
		return err
	}

	var se *StoreError
	if errors.As(err, &se) {
		return err
	}

	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err originated in the persistence layer.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
