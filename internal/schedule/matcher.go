// Package schedule resolves recurrence rules against calendar dates and
// aggregates an owner's entry set into day and month views. Every function
// here is pure: no I/O, no clock reads, no logging.
package schedule

import (
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

// Matches reports whether the entry occurs on the given calendar date.
//
// Dates are owner-local calendar days, not UTC instants; recurrence and
// anchoring are defined in terms of the days the owner perceives. Window
// bounds are inclusive and only consulted for recurring entries: a one-off
// entry matches exactly its anchor date and ignores any window fields it
// may carry.
func Matches(e domain.ScheduleEntry, day domain.Date) bool {
	if e.Recurrence.Recurring() {
		if ws := e.Recurrence.WindowStart; !ws.IsZero() && day.Before(ws) {
			return false
		}
		if we := e.Recurrence.WindowEnd; !we.IsZero() && day.After(we) {
			return false
		}
	}
	switch e.Recurrence.Kind {
	case domain.RecurrenceNone:
		return day == e.Anchor
	case domain.RecurrenceDaily:
		return true
	case domain.RecurrenceWeekly:
		return e.Recurrence.OnWeekday(day.Weekday())
	default:
		return false
	}
}

// overlapsMonth reports whether the entry could match any day of the month.
// One-off entries overlap exactly when the anchor falls inside the month;
// recurring entries overlap when their inclusive window intersects it, with
// an absent bound treated as unbounded on that side.
func overlapsMonth(e domain.ScheduleEntry, m domain.YearMonth) bool {
	if !e.Recurrence.Recurring() {
		return m.Contains(e.Anchor)
	}
	if ws := e.Recurrence.WindowStart; !ws.IsZero() && ws.After(m.Last()) {
		return false
	}
	if we := e.Recurrence.WindowEnd; !we.IsZero() && we.Before(m.First()) {
		return false
	}
	return true
}
