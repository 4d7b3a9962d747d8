package domain

import (
	"fmt"
	"time"
)

// dayLayout is the canonical wire and storage format for calendar days.
const dayLayout = "2006-01-02"

// Day is a calendar day stripped of time-of-day and timezone, represented
// as a canonical YYYY-MM-DD string. All scheduling math and comparisons in
// the application operate on Day values, never on raw timestamps, so a due
// date at 00:00 and "now" at 23:59 on the same day always compare as equal.
//
// Because the representation is YYYY-MM-DD, lexicographic ordering of the
// underlying strings matches chronological ordering, which keeps Day usable
// directly as a map key and in ORDER BY clauses.
type Day string

// NewDay returns the calendar day of the given instant in the instant's
// location. Calendar-day truncation (not 24h-duration truncation) means DST
// transitions can never shift the result by a day.
func NewDay(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// Today returns the calendar day of the given "now" instant.
func Today(now time.Time) Day {
	return NewDay(now)
}

// ParseDay validates and canonicalizes a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return NewDay(t), nil
}

// String returns the canonical YYYY-MM-DD representation.
func (d Day) String() string {
	return string(d)
}

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool {
	return d == ""
}

// Validate checks that the day holds a real calendar date.
func (d Day) Validate() error {
	if _, err := time.Parse(dayLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDay, string(d))
	}
	return nil
}

// Time returns the day anchored at midnight UTC. Used only for calendar
// arithmetic; comparisons stay on the Day values themselves.
func (d Day) Time() time.Time {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n calendar days after d (or before, for negative
// n), using calendar arithmetic so month and year boundaries are handled
// correctly (Jan 30 + 5 days = Feb 4).
func (d Day) AddDays(n int) Day {
	return NewDay(d.Time().AddDate(0, 0, n))
}

// Before reports whether d falls strictly before other.
func (d Day) Before(other Day) bool {
	return d < other
}

// After reports whether d falls strictly after other.
func (d Day) After(other Day) bool {
	return d > other
}

// DaysBetween returns the number of whole calendar days from "from" to
// "to". Positive when "to" is later.
func DaysBetween(from, to Day) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}
