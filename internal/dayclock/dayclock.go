// Package dayclock normalizes timestamps to the user's local calendar day.
// Every component that reasons about "today" goes through this package so
// phase, streak, and scheduling logic never disagree about what day it is.
package dayclock

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// LocalDateOf returns the calendar date of t as seen by a user whose local
// timezone is offsetMinutes east of UTC.
func LocalDateOf(t time.Time, offsetMinutes int) Date {
	local := t.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// ParseDate parses a date in "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String formats the date as "2006-01-02", the form it is persisted in.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns the date n days after d. Negative n walks backward.
// Month and year boundaries are normalized by the time package.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Start returns the UTC instant at which the local day d begins for a user
// offsetMinutes east of UTC.
func (d Date) Start(offsetMinutes int) time.Time {
	midnight := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return midnight.Add(-time.Duration(offsetMinutes) * time.Minute)
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}
