package domain

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for calendar dates ("2024-03-10").
const dateLayout = "2006-01-02"

// monthLayout is the wire format for calendar months ("2024-03").
const monthLayout = "2006-01"

// Date is a zone-naive calendar date. Recurrence matching, anchoring, and
// window bounds are all defined on dates the owner perceives, so Date carries
// no time-of-day and no location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date from its components without validation; use
// Valid to check that the components name a real calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates an instant to the calendar date it falls on in its own
// location. Callers choosing a display or owner zone convert first.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// String formats the date as "YYYY-MM-DD".
func (d Date) String() string {
	return d.In(time.UTC).Format(dateLayout)
}

// IsZero reports whether the date is the zero value (used as "absent").
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Valid reports whether the components name a real calendar day.
// time.Date normalizes overflow (Feb 30 becomes Mar 2), so a round-trip
// comparison detects impossible dates.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return DateOf(d.In(time.UTC)) == d
}

// In returns midnight of the date in the given location.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the day of the week (time.Sunday == 0).
func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d falls strictly after o.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// AddDays returns the date n calendar days later (earlier when negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to o; negative when o
// precedes d.
func (d Date) DaysUntil(o Date) int {
	return int(o.In(time.UTC).Sub(d.In(time.UTC)) / (24 * time.Hour))
}

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing the given date.
func MonthOf(d Date) YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

// ParseYearMonth parses a "YYYY-MM" string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// String formats the month as "YYYY-MM".
func (m YearMonth) String() string {
	return m.First().In(time.UTC).Format(monthLayout)
}

// Valid reports whether the month component is in range.
func (m YearMonth) Valid() bool {
	return m.Month >= time.January && m.Month <= time.December
}

// First returns the first day of the month.
func (m YearMonth) First() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Last returns the last day of the month.
func (m YearMonth) Last() Date {
	// Day 0 of the following month normalizes to this month's final day.
	return DateOf(time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC))
}

// Days returns the number of days in the month.
func (m YearMonth) Days() int {
	return m.Last().Day
}

// Contains reports whether the date falls inside the month.
func (m YearMonth) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Next returns the following month.
func (m YearMonth) Next() YearMonth {
	return MonthOf(m.Last().AddDays(1))
}

// Prev returns the preceding month.
func (m YearMonth) Prev() YearMonth {
	return MonthOf(m.First().AddDays(-1))
}
