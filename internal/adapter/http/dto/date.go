package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
)

const dateLayout = "2006-01-02"

// Date accepts either a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Calendar dates are read as midnight UTC.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDate, b)
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// ParseDate parses a calendar date or an RFC 3339 timestamp into UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}

	return t.UTC(), nil
}

// timePtr returns nil for an absent date.
func timePtr(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}

	t := d.Time
	return &t
}
