package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxWalletNameLength = 100
	MaxLabelLength      = 100  // category, source, person name
	MaxNotesLength      = 1000 // notes, reasons
	MaxAmount           = "1000000000000"
	MinAmount           = "0.01"
	AmountScale         = 2 // decimal places stored
)

var (
	minAmount = decimal.RequireFromString(MinAmount)
	maxAmount = decimal.RequireFromString(MaxAmount)

	// Effective dates outside this window are almost certainly input errors.
	minEffectiveDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxEffectiveDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// ValidateWalletName validates a wallet display name.
func ValidateWalletName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidWalletName)
	}

	if len(name) > MaxWalletNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidWalletName, MaxWalletNameLength)
	}

	return nil
}

// ValidateAmount validates a monetary amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, AmountScale)
	}

	return nil
}

// ValidateEffectiveDate rejects zero and out-of-range dates.
func ValidateEffectiveDate(t time.Time) error {
	if t.IsZero() || t.Before(minEffectiveDate) || t.After(maxEffectiveDate) {
		return ErrInvalidDate
	}

	return nil
}

// ValidateLabel validates a required short label such as a category.
func ValidateLabel(field, value string) error {
	value = strings.TrimSpace(value)

	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}

	if len(value) > MaxLabelLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, field, MaxLabelLength)
	}

	return nil
}

// ValidateNotes validates optional free-form text.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrFieldTooLong, MaxNotesLength)
	}

	return nil
}

// ValidateLimit clamps a list limit to [1, max].
func ValidateLimit(limit, defaultLimit, max int) int {
	if limit <= 0 {
		return defaultLimit
	}

	if limit > max {
		return max
	}

	return limit
}
