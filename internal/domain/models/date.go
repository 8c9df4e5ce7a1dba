package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical storage form of a Date.
const DateLayout = "2006-01-02"

// readDateLayout also accepts single-digit months and days.
const readDateLayout = "2006-1-2"

// Date is a calendar day. Its string form is always the zero-padded YYYY-MM-DD
// layout, so comparing two dates as strings orders them chronologically. The
// zero Date renders as the empty string and sorts before every real date.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Year(), t.Month(), t.Day()}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate reads a YYYY-MM-DD (or YYYY-M-D) string.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, fmt.Errorf("%w: date is empty", ErrValidation)
	}
	t, err := time.Parse(readDateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, value)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// String formats the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.y, int(d.m), d.d)
}

// Compare returns -1, 0 or +1 comparing the canonical string forms.
func (d Date) Compare(other Date) int {
	return strings.Compare(d.String(), other.String())
}

// Between reports whether start <= d <= end, inclusive on both ends.
func (d Date) Between(start, end Date) bool {
	if d.IsZero() {
		return false
	}
	return d.Compare(start) >= 0 && d.Compare(end) <= 0
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return NewDate(d.y, d.m, d.d+n)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
