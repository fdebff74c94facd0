package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateWalletName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateWalletName("Main Bank"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateWalletName("   ")
		if !errors.Is(err, ErrInvalidWalletName) {
			t.Fatalf("expected ErrInvalidWalletName, got %v", err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation category, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		err := ValidateWalletName(strings.Repeat("a", MaxWalletNameLength+1))
		if !errors.Is(err, ErrInvalidWalletName) {
			t.Fatalf("expected ErrInvalidWalletName, got %v", err)
		}
	})
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.RequireFromString("100.25")); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("0.001")); !errors.Is(err, ErrAmountTooSmall) {
		t.Fatalf("expected ErrAmountTooSmall, got %v", err)
	}

	huge := decimal.RequireFromString(MaxAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("10.125")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for three decimal places, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("10.500")); err != nil {
		t.Fatalf("expected trailing zeros to be accepted, got %v", err)
	}
}

func TestValidateEffectiveDate(t *testing.T) {
	t.Parallel()

	if err := ValidateEffectiveDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}

	if err := ValidateEffectiveDate(time.Time{}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for zero time, got %v", err)
	}

	if err := ValidateEffectiveDate(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for ancient date, got %v", err)
	}
}

func TestValidateLabel(t *testing.T) {
	t.Parallel()

	if err := ValidateLabel("category", "Food"); err != nil {
		t.Fatalf("expected valid label, got %v", err)
	}

	if err := ValidateLabel("category", " "); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	if err := ValidateLabel("category", strings.Repeat("x", MaxLabelLength+1)); !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("expected ErrFieldTooLong, got %v", err)
	}
}

func TestValidateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit, want int
	}{
		{0, 20},
		{-3, 20},
		{50, 50},
		{5000, 1000},
	}

	for _, tt := range tests {
		if got := ValidateLimit(tt.limit, 20, 1000); got != tt.want {
			t.Fatalf("ValidateLimit(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("insert transaction", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected store error to unwrap to cause")
	}
	if !IsStoreError(err) {
		t.Fatalf("expected IsStoreError to be true")
	}
	if got := err.Error(); got != "store insert transaction: connection reset" {
		t.Fatalf("unexpected message %q", got)
	}

	if NewStoreError("op", nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}

	if wrapped := NewStoreError("find wallet", ErrWalletNotFound); wrapped != ErrWalletNotFound {
		t.Fatalf("expected domain errors to pass through, got %v", wrapped)
	}
}
