package domain

import (
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// dateLayout is the wire and storage format for civil dates.
const dateLayout = "2006-01-02"

// Date is a civil date (year, month, day) without a time-of-day component.
// Borrow, due and extension dates are civil dates: a loan due "2026-09-11"
// is due that day regardless of timezone or clock.
//
// It marshals to and from "YYYY-MM-DD" JSON strings and is stored as TEXT
// in the same format. The zero Date is "no date" and is omitted from JSON
// via omitzero.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current civil date.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, m, d)
}

// DateOf truncates a time.Time to its civil date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String returns the date in YYYY-MM-DD format, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same civil date.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON outputs the date as a "YYYY-MM-DD" string, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" strings, full RFC3339 timestamps
// (truncated to their date), and null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("cannot unmarshal %s into Date", s)
	}
	s = s[1 : len(s)-1]

	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		*d = Date{Time: t}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = DateOf(t)
		return nil
	}
	return fmt.Errorf("cannot parse date string: %s", s)
}

// Schema returns the OpenAPI schema for Date so huma documents it as a
// plain date string instead of reflecting into the struct.
func (d Date) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:     "string",
		Format:   "date",
		Examples: []any{"2026-09-11"},
	}
}
