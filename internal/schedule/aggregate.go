package schedule

import (
	"sort"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

// SkippedEntry records a stored entry the aggregator refused to resolve,
// together with the shape violation that disqualified it. Skips are
// diagnostics for the caller; they never abort an aggregation.
type SkippedEntry struct {
	EntryID string
	Reason  error
}

// DaySchedule is the resolved view of one calendar date: every occurrence
// on that date in display order, plus any records skipped as malformed.
type DaySchedule struct {
	Date        domain.Date
	Occurrences []domain.Occurrence
	Skipped     []SkippedEntry
}

// MonthIndicators summarizes a month for calendar-dot rendering. Colors
// holds an indicator color for exactly the dates with at least one
// occurrence; dates without occurrences are absent from the map.
type MonthIndicators struct {
	Month   domain.YearMonth
	Colors  map[domain.Date]string
	Skipped []SkippedEntry
}

// OccurrencesOnDate resolves the entry set against a single date.
//
// The result is ordered ascending by start instant, ties broken by entry ID,
// so repeated calls and differing storage iteration orders render
// identically. Records failing the shape check are skipped and reported, not
// fatal. An empty day is a DaySchedule with no occurrences, not an error.
func OccurrencesOnDate(entries []domain.ScheduleEntry, day domain.Date) DaySchedule {
	ds := DaySchedule{Date: day}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			ds.Skipped = append(ds.Skipped, SkippedEntry{EntryID: e.ID, Reason: err})
			continue
		}
		if Matches(e, day) {
			ds.Occurrences = append(ds.Occurrences, domain.OccurrenceOf(e, day))
		}
	}
	sort.Slice(ds.Occurrences, func(i, j int) bool {
		a := ds.Occurrences[i]
		b := ds.Occurrences[j]
		if a.StartUTC.Equal(b.StartUTC) {
			return a.EntryID < b.EntryID
		}
		return a.StartUTC.Before(b.StartUTC)
	})
	return ds
}

// IndicatorsForMonth resolves the entry set against every day of a month.
//
// When several entries land on the same day the last matching entry in input
// order supplies the color; there is no blending or priority across
// activities. Cost is O(entries x days).
func IndicatorsForMonth(entries []domain.ScheduleEntry, month domain.YearMonth) MonthIndicators {
	mi := MonthIndicators{Month: month, Colors: make(map[domain.Date]string)}
	days := month.Days()
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			mi.Skipped = append(mi.Skipped, SkippedEntry{EntryID: e.ID, Reason: err})
			continue
		}
		if !overlapsMonth(e, month) {
			continue
		}
		for d := 1; d <= days; d++ {
			day := domain.NewDate(month.Year, month.Month, d)
			if Matches(e, day) {
				mi.Colors[day] = e.Color
			}
		}
	}
	return mi
}
