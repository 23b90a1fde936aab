// Package date provides a calendar day type for ledger directives, and a
// History of values keyed by day.
package date

import (
	"fmt"
	"time"
)

// Layout is the ISO-8601 layout dates are written in.
const Layout = "2006-01-02"

// lenientLayout also accepts single digit months and days when reading.
const lenientLayout = "2006-1-2"

// Date is a calendar day. The zero Date means "no date".
//
// Dates are comparable with ==.
type Date struct {
	t time.Time // midnight UTC
}

// New returns the Date of a year, month and day, normalized like time.Date:
// New(2024, 2, 30) is 2024-03-01.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.t.Before(x.t) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.t.After(x.t) }

// Compare returns -1, 0 or +1 when d is before, equal to or after x, for use
// with the slices package.
func (d Date) Compare(x Date) int { return d.t.Compare(x.t) }

// String returns the date as "2006-01-02", or an empty string for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// Parse parses "2025-07-01", or the lenient "2025-7-1".
func Parse(s string) (Date, error) {
	t, err := time.Parse(lenientLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. It is meant for constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalText writes the date, or nothing for the zero Date.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText parses a date, an empty text is the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
