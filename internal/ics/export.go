// Package ics renders an owner's entry set as an RFC 5545 calendar, one
// VEVENT per entry with an RRULE for recurring kinds.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/schedule"
)

// colorProperty carries the activity color snapshot through to consumers
// that understand it; standard clients ignore unknown X- properties.
const colorProperty = "X-AVAIL-COLOR"

// Export serializes the owner's entries as a VCALENDAR. Records failing the
// shape check, and recurring entries whose window excludes every qualifying
// day, are skipped and reported rather than failing the export.
func Export(owner domain.Owner, entries []domain.ScheduleEntry) (string, []schedule.SkippedEntry, error) {
	loc, err := owner.Location()
	if err != nil {
		return "", nil, err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//avail//schedule export//EN")
	cal.SetXWRCalName(owner.DisplayName)

	var skipped []schedule.SkippedEntry
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			skipped = append(skipped, schedule.SkippedEntry{EntryID: e.ID, Reason: err})
			continue
		}
		start, end, ok := eventInstants(e)
		if !ok {
			skipped = append(skipped, schedule.SkippedEntry{
				EntryID: e.ID,
				Reason:  fmt.Errorf("entry %s never occurs within its window", e.ID),
			})
			continue
		}

		ev := cal.AddEvent(e.ID)
		ev.SetDtStampTime(e.CreatedAt)
		ev.SetCreatedTime(e.CreatedAt)
		ev.SetSummary(e.ActivityName)
		ev.SetDescription(schedule.ClockRange(e.StartUTC, e.EndUTC, loc) + " " + owner.Timezone)
		ev.SetProperty(ical.ComponentProperty(colorProperty), e.Color)
		ev.SetStartAt(start)
		ev.SetEndAt(end)

		if e.Recurrence.Recurring() {
			rule, err := recurrenceRule(e, start)
			if err != nil {
				return "", skipped, err
			}
			ev.AddRrule(rule)
		}
	}
	return cal.Serialize(), skipped, nil
}

// eventInstants computes the instants of the entry's first occurrence. The
// stored instants belong to the anchor date; recurring entries shift them by
// whole days onto the first day the rule fires. Day shifts are exact in UTC.
func eventInstants(e domain.ScheduleEntry) (time.Time, time.Time, bool) {
	if !e.Recurrence.Recurring() {
		return e.StartUTC, e.EndUTC, true
	}
	first, ok := firstMatch(e)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start, end := shiftToDay(e, first)
	return start, end, true
}

// firstMatch finds the first day the rule fires. Seven probes suffice:
// daily fires on the window start and a weekly rule with a non-empty
// weekday set fires within a week of it.
func firstMatch(e domain.ScheduleEntry) (domain.Date, bool) {
	day := e.Recurrence.WindowStart
	for i := 0; i < 7; i++ {
		if we := e.Recurrence.WindowEnd; !we.IsZero() && day.After(we) {
			return domain.Date{}, false
		}
		if schedule.Matches(e, day) {
			return day, true
		}
		day = day.AddDays(1)
	}
	return domain.Date{}, false
}

// lastMatch finds the last day a bounded rule fires, for UNTIL.
func lastMatch(e domain.ScheduleEntry) (domain.Date, bool) {
	day := e.Recurrence.WindowEnd
	for i := 0; i < 7; i++ {
		if day.Before(e.Recurrence.WindowStart) {
			return domain.Date{}, false
		}
		if schedule.Matches(e, day) {
			return day, true
		}
		day = day.AddDays(-1)
	}
	return domain.Date{}, false
}

func shiftToDay(e domain.ScheduleEntry, day domain.Date) (time.Time, time.Time) {
	delta := time.Duration(e.Anchor.DaysUntil(day)) * 24 * time.Hour
	return e.StartUTC.Add(delta), e.EndUTC.Add(delta)
}

func recurrenceRule(e domain.ScheduleEntry, dtstart time.Time) (string, error) {
	opt := rrule.ROption{Dtstart: dtstart}
	switch e.Recurrence.Kind {
	case domain.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case domain.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = rruleWeekdays(e.Recurrence.Weekdays)
	default:
		return "", fmt.Errorf("recurrence kind %q: %w", e.Recurrence.Kind, domain.ErrInvalidRecurrence)
	}
	if !e.Recurrence.WindowEnd.IsZero() {
		if last, ok := lastMatch(e); ok {
			until, _ := shiftToDay(e, last)
			opt.Until = until
		}
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("build rrule for %s: %w", e.ID, err)
	}
	return r.String(), nil
}

var rruleDays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

func rruleWeekdays(days []time.Weekday) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, rruleDays[d])
	}
	return out
}
