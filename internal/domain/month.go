package domain

import (
	"fmt"
	"strings"
	"time"
)

// MonthKeyLayout is the canonical textual form of a MonthKey.
const MonthKeyLayout = "2006-01"

// MonthKey identifies a calendar month. Months are evaluated in UTC.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf truncates t to its calendar month in UTC.
func MonthOf(t time.Time) MonthKey {
	u := t.UTC()
	return MonthKey{Year: u.Year(), Month: u.Month()}
}

// NewMonthKey validates year and month.
func NewMonthKey(year int, month time.Month) (MonthKey, error) {
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return MonthKey{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidMonth, year, int(month))
	}

	return MonthKey{Year: year, Month: month}, nil
}

// ParseMonthKey parses a YYYY-MM string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(MonthKeyLayout, strings.TrimSpace(s))
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	return MonthOf(t), nil
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// IsZero reports whether k is the zero MonthKey.
func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// Start returns the first instant of the month.
func (k MonthKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month (exclusive bound).
func (k MonthKey) End() time.Time {
	return k.Next().Start()
}

// Contains reports whether t falls within the month.
func (k MonthKey) Contains(t time.Time) bool {
	return MonthOf(t) == k
}

// AddMonths returns the key n months away from k.
func (k MonthKey) AddMonths(n int) MonthKey {
	return MonthOf(k.Start().AddDate(0, n, 0))
}

func (k MonthKey) Prev() MonthKey { return k.AddMonths(-1) }

func (k MonthKey) Next() MonthKey { return k.AddMonths(1) }

func (k MonthKey) Before(other MonthKey) bool {
	return k.Year < other.Year || (k.Year == other.Year && k.Month < other.Month)
}

func (k MonthKey) After(other MonthKey) bool {
	return other.Before(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k MonthKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MonthKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMonthKey(string(text))
	if err != nil {
		return err
	}

	*k = parsed
	return nil
}
