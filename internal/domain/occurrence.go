package domain

import "time"

// Occurrence is one calendar-day realization of a schedule entry after
// recurrence resolution. It carries the entry identity, the activity
// snapshot, and the entry's absolute instants unchanged; converting those
// instants into a viewer's zone is a formatting step that happens after
// resolution, never during it.
type Occurrence struct {
	EntryID      string
	ActivityID   string
	ActivityName string
	Color        string
	Date         Date
	StartUTC     time.Time
	EndUTC       time.Time
}

// OccurrenceOf resolves an entry onto one calendar date.
func OccurrenceOf(e ScheduleEntry, day Date) Occurrence {
	return Occurrence{
		EntryID:      e.ID,
		ActivityID:   e.ActivityID,
		ActivityName: e.ActivityName,
		Color:        e.Color,
		Date:         day,
		StartUTC:     e.StartUTC,
		EndUTC:       e.EndUTC,
	}
}

// Duration returns the occurrence length.
func (o Occurrence) Duration() time.Duration {
	return o.EndUTC.Sub(o.StartUTC)
}
