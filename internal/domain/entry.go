package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// RecurrenceKind selects how a schedule entry repeats.
type RecurrenceKind string

const (
	// RecurrenceNone places the entry on its anchor date only.
	RecurrenceNone RecurrenceKind = "none"
	// RecurrenceDaily places the entry on every day inside its window.
	RecurrenceDaily RecurrenceKind = "daily"
	// RecurrenceWeekly places the entry on window days whose weekday is in
	// the entry's weekday set.
	RecurrenceWeekly RecurrenceKind = "weekly"
)

var validRecurrenceKinds = []RecurrenceKind{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly}

// Recurrence is the repetition rule attached to a schedule entry. WindowStart
// and WindowEnd bound the calendar days a recurring rule may fire on, both
// inclusive; a zero WindowEnd leaves the rule open-ended. Both fields are
// meaningless when Kind is RecurrenceNone.
type Recurrence struct {
	Kind        RecurrenceKind
	Weekdays    []time.Weekday
	WindowStart Date
	WindowEnd   Date
}

// Recurring reports whether the rule repeats at all.
func (r Recurrence) Recurring() bool {
	return r.Kind == RecurrenceDaily || r.Kind == RecurrenceWeekly
}

// OnWeekday reports whether the weekday set includes w. Only meaningful for
// weekly rules.
func (r Recurrence) OnWeekday(w time.Weekday) bool {
	return slices.Contains(r.Weekdays, w)
}

// ScheduleEntry is one placed or recurring block of time. Entries are
// immutable once created: the only lifecycle transitions are creation and
// deletion, so there are no mutator methods here.
//
// StartUTC and EndUTC are absolute instants fixing the wall-clock time of day
// and duration; every occurrence of a recurring entry repeats that same UTC
// time of day. Anchor is the owner-local calendar date the entry was placed
// on, and is the literal match target for non-recurring entries.
type ScheduleEntry struct {
	ID           string
	OwnerID      string
	ActivityID   string
	ActivityName string
	Color        string
	StartUTC     time.Time
	EndUTC       time.Time
	Anchor       Date
	Recurrence   Recurrence
	CreatedAt    time.Time
}

// EntryInput holds the fields required to construct a schedule entry. The
// activity name and color are the caller's snapshot of the referenced
// activity at creation time.
type EntryInput struct {
	ID           string
	OwnerID      string
	ActivityID   string
	ActivityName string
	Color        string
	StartUTC     time.Time
	EndUTC       time.Time
	Anchor       Date
	Recurrence   Recurrence
}

// NewScheduleEntry constructs a validated, immutable schedule entry. Every
// constraint failure is reported as a wrapped sentinel with enough context to
// name the violated field.
func NewScheduleEntry(in EntryInput, now time.Time) (ScheduleEntry, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.ActivityID = strings.TrimSpace(in.ActivityID)
	in.ActivityName = strings.TrimSpace(in.ActivityName)

	if in.ID == "" {
		return ScheduleEntry{}, fmt.Errorf("%w: entry id is empty", ErrInvalidID)
	}
	if in.OwnerID == "" {
		return ScheduleEntry{}, fmt.Errorf("%w: owner id is empty", ErrInvalidID)
	}
	if in.ActivityID == "" {
		return ScheduleEntry{}, fmt.Errorf("%w: activity id is empty", ErrInvalidID)
	}
	if in.ActivityName == "" {
		return ScheduleEntry{}, fmt.Errorf("%w: activity name snapshot is empty", ErrInvalidName)
	}
	if !in.Anchor.Valid() {
		return ScheduleEntry{}, fmt.Errorf("%w: anchor %v", ErrInvalidDate, in.Anchor)
	}
	if in.StartUTC.IsZero() || in.EndUTC.IsZero() {
		return ScheduleEntry{}, fmt.Errorf("%w: start and end are required", ErrInvalidTimeRange)
	}
	if !in.StartUTC.Before(in.EndUTC) {
		return ScheduleEntry{}, fmt.Errorf("%w: end %s is not after start %s",
			ErrInvalidTimeRange, in.EndUTC.UTC().Format(time.RFC3339), in.StartUTC.UTC().Format(time.RFC3339))
	}

	rec, err := normalizeRecurrence(in.Recurrence)
	if err != nil {
		return ScheduleEntry{}, err
	}

	return ScheduleEntry{
		ID:           in.ID,
		OwnerID:      in.OwnerID,
		ActivityID:   in.ActivityID,
		ActivityName: in.ActivityName,
		Color:        NormalizeColor(in.Color),
		StartUTC:     in.StartUTC.UTC(),
		EndUTC:       in.EndUTC.UTC(),
		Anchor:       in.Anchor,
		Recurrence:   rec,
		CreatedAt:    now.UTC(),
	}, nil
}

// normalizeRecurrence validates a rule and canonicalizes its weekday set.
func normalizeRecurrence(r Recurrence) (Recurrence, error) {
	if !slices.Contains(validRecurrenceKinds, r.Kind) {
		return Recurrence{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, r.Kind)
	}

	if r.Kind == RecurrenceNone {
		// Window and weekday fields on a one-time entry are ignored even if
		// a caller set them; store the rule as if they were absent.
		return Recurrence{Kind: RecurrenceNone}, nil
	}

	if r.WindowStart.IsZero() {
		return Recurrence{}, fmt.Errorf("%w for %s recurrence", ErrWindowStartRequired, r.Kind)
	}
	if !r.WindowStart.Valid() {
		return Recurrence{}, fmt.Errorf("%w: window start %v", ErrInvalidDate, r.WindowStart)
	}
	if !r.WindowEnd.IsZero() {
		if !r.WindowEnd.Valid() {
			return Recurrence{}, fmt.Errorf("%w: window end %v", ErrInvalidDate, r.WindowEnd)
		}
		if r.WindowStart.After(r.WindowEnd) {
			return Recurrence{}, fmt.Errorf("%w: start %s after end %s",
				ErrInvalidWindow, r.WindowStart, r.WindowEnd)
		}
	}

	switch r.Kind {
	case RecurrenceDaily:
		r.Weekdays = nil
	case RecurrenceWeekly:
		days, err := normalizeWeekdays(r.Weekdays)
		if err != nil {
			return Recurrence{}, err
		}
		r.Weekdays = days
	}
	return r, nil
}

// normalizeWeekdays sorts and deduplicates a weekday set, rejecting empty
// sets and out-of-range values.
func normalizeWeekdays(days []time.Weekday) ([]time.Weekday, error) {
	if len(days) == 0 {
		return nil, ErrWeekdaysRequired
	}
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Validate re-checks the shape invariants on an entry fetched from storage.
// Aggregation skips records that fail this check rather than aborting, so a
// single corrupt row cannot take down a whole calendar view.
func (e ScheduleEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: entry id is empty", ErrInvalidID)
	}
	if e.StartUTC.IsZero() || e.EndUTC.IsZero() || !e.StartUTC.Before(e.EndUTC) {
		return fmt.Errorf("%w: start %v end %v", ErrInvalidTimeRange, e.StartUTC, e.EndUTC)
	}
	if !e.Anchor.Valid() {
		return fmt.Errorf("%w: anchor %v", ErrInvalidDate, e.Anchor)
	}
	if !slices.Contains(validRecurrenceKinds, e.Recurrence.Kind) {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, e.Recurrence.Kind)
	}
	if e.Recurrence.Recurring() {
		if e.Recurrence.WindowStart.IsZero() || !e.Recurrence.WindowStart.Valid() {
			return fmt.Errorf("%w for %s recurrence", ErrWindowStartRequired, e.Recurrence.Kind)
		}
		if !e.Recurrence.WindowEnd.IsZero() && e.Recurrence.WindowStart.After(e.Recurrence.WindowEnd) {
			return fmt.Errorf("%w: start %s after end %s",
				ErrInvalidWindow, e.Recurrence.WindowStart, e.Recurrence.WindowEnd)
		}
	}
	if e.Recurrence.Kind == RecurrenceWeekly && len(e.Recurrence.Weekdays) == 0 {
		return ErrWeekdaysRequired
	}
	return nil
}
