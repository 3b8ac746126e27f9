package sheet

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for dates (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. Keeping the string form makes
// structural equality and JSON round-trips trivial, and ISO dates sort
// lexicographically.
type Date string

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", &ValidationError{Field: "date", Constraint: "datetime", Value: s}
	}
	return Date(s), nil
}

// Today returns the current date.
func Today() Date {
	return Date(time.Now().Format(DateLayout))
}

// MustDate parses a YYYY-MM-DD string and panics on malformed input.
// Intended for fixtures and defaults known at compile time.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time converts the date to a time.Time at midnight UTC.
// Malformed dates yield the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(DateLayout))
}

// Before reports whether d is before other. ISO dates compare correctly as
// strings.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// Validate checks that the date is well formed.
func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return string(d)
}

// Short renders the date in short display form (e.g. 1/5/22), as used in
// tables and document headers.
func (d Date) Short() string {
	if d == "" {
		return ""
	}
	return fmt.Sprintf("%d/%d/%02d", int(d.Time().Month()), d.Time().Day(), d.Time().Year()%100)
}
