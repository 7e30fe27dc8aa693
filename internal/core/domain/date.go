package domain

import (
	"fmt"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 form.
const DateFormat = "2006-01-02"

// Date is a calendar date with no time component, stored as an ISO-8601
// YYYY-MM-DD string. Because the format is fixed-width, ordering dates
// is plain string comparison. Account codes are compared the same way
// elsewhere; for dates the comparison is also numerically correct.
type Date string

// ParseDate validates s as an ISO-8601 calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateFormat, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateFormat))
}

// Today returns the current date in UTC.
func Today() Date {
	return Date(time.Now().UTC().Format(DateFormat))
}

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d < x }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d > x }

// Time returns midnight UTC of the date. Invalid dates return the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateFormat, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// DaysBetween returns the absolute number of days separating d and x.
func (d Date) DaysBetween(x Date) int {
	diff := d.Time().Sub(x.Time())
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

func (d Date) String() string { return string(d) }
