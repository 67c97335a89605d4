package ics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

func testOwner(t *testing.T) domain.Owner {
	t.Helper()
	owner, err := domain.NewOwner("o1", "Zeeshan", "Asia/Karachi", time.Now())
	if err != nil {
		t.Fatalf("NewOwner() error = %v", err)
	}
	return owner
}

func mustEntry(t *testing.T, id string, start, end time.Time, anchor domain.Date, rec domain.Recurrence) domain.ScheduleEntry {
	t.Helper()
	e, err := domain.NewScheduleEntry(domain.EntryInput{
		ID:           id,
		OwnerID:      "o1",
		ActivityID:   "a1",
		ActivityName: "Gym",
		Color:        "#112233",
		StartUTC:     start,
		EndUTC:       end,
		Anchor:       anchor,
		Recurrence:   rec,
	}, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewScheduleEntry(%s) error = %v", id, err)
	}
	return e
}

func wantContains(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(out, p) {
			t.Errorf("Export() output missing %q\n%s", p, out)
		}
	}
}

func TestExportOneOff(t *testing.T) {
	e := mustEntry(t, "e1",
		time.Date(2024, time.March, 10, 4, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 10, 5, 30, 0, 0, time.UTC),
		domain.NewDate(2024, time.March, 10),
		domain.Recurrence{Kind: domain.RecurrenceNone},
	)

	out, skipped, err := Export(testOwner(t), []domain.ScheduleEntry{e})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("Export() skipped = %v, want none", skipped)
	}

	wantContains(t, out,
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"UID:e1",
		"DTSTART:20240310T040000Z",
		"DTEND:20240310T053000Z",
		"SUMMARY:Gym",
		"DESCRIPTION:09:00-10:30 Asia/Karachi",
		"X-AVAIL-COLOR:#112233",
		"END:VCALENDAR",
	)
	if strings.Contains(out, "RRULE") {
		t.Errorf("Export() emitted an RRULE for a one-time entry\n%s", out)
	}
}

func TestExportDailyBoundedWindow(t *testing.T) {
	e := mustEntry(t, "e2",
		time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
		domain.NewDate(2024, time.March, 1),
		domain.Recurrence{
			Kind:        domain.RecurrenceDaily,
			WindowStart: domain.NewDate(2024, time.March, 1),
			WindowEnd:   domain.NewDate(2024, time.March, 5),
		},
	)

	out, _, err := Export(testOwner(t), []domain.ScheduleEntry{e})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	wantContains(t, out,
		"DTSTART:20240301T090000Z",
		"FREQ=DAILY",
		"UNTIL=20240305T090000Z",
	)
}

func TestExportWeeklyBoundedWindow(t *testing.T) {
	// Monday and Wednesday between March 1 and June 30 2024. The last
	// qualifying day is Wednesday June 26, so UNTIL lands on its start.
	e := mustEntry(t, "e3",
		time.Date(2024, time.March, 4, 4, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 4, 5, 30, 0, 0, time.UTC),
		domain.NewDate(2024, time.March, 4),
		domain.Recurrence{
			Kind:        domain.RecurrenceWeekly,
			Weekdays:    []time.Weekday{time.Monday, time.Wednesday},
			WindowStart: domain.NewDate(2024, time.March, 1),
			WindowEnd:   domain.NewDate(2024, time.June, 30),
		},
	)

	out, _, err := Export(testOwner(t), []domain.ScheduleEntry{e})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	wantContains(t, out,
		"DTSTART:20240304T040000Z",
		"FREQ=WEEKLY",
		"BYDAY=MO,WE",
		"UNTIL=20240626T040000Z",
	)
}

func TestExportWeeklyShiftsStartToFirstQualifyingDay(t *testing.T) {
	// The stored instants sit on the Sunday anchor, but the rule only fires
	// on Wednesdays. DTSTART must move to Wednesday March 6 while keeping
	// the 04:00Z time of day.
	e := mustEntry(t, "e4",
		time.Date(2024, time.March, 10, 4, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 10, 5, 30, 0, 0, time.UTC),
		domain.NewDate(2024, time.March, 10),
		domain.Recurrence{
			Kind:        domain.RecurrenceWeekly,
			Weekdays:    []time.Weekday{time.Wednesday},
			WindowStart: domain.NewDate(2024, time.March, 1),
		},
	)

	out, _, err := Export(testOwner(t), []domain.ScheduleEntry{e})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	wantContains(t, out,
		"DTSTART:20240306T040000Z",
		"DTEND:20240306T053000Z",
		"FREQ=WEEKLY",
		"BYDAY=WE",
	)
	if strings.Contains(out, "UNTIL") {
		t.Errorf("Export() emitted UNTIL for an open-ended window\n%s", out)
	}
}

func TestExportSkipsMalformed(t *testing.T) {
	good := mustEntry(t, "e1",
		time.Date(2024, time.March, 10, 4, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 10, 5, 30, 0, 0, time.UTC),
		domain.NewDate(2024, time.March, 10),
		domain.Recurrence{Kind: domain.RecurrenceNone},
	)
	bad := good
	bad.ID = "e-bad"
	bad.Recurrence = domain.Recurrence{
		Kind:        domain.RecurrenceWeekly,
		WindowStart: domain.NewDate(2024, time.March, 1),
	}

	out, skipped, err := Export(testOwner(t), []domain.ScheduleEntry{good, bad})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("Export() emitted %d events, want 1\n%s", got, out)
	}
	if len(skipped) != 1 || skipped[0].EntryID != "e-bad" {
		t.Fatalf("Export() skipped = %v, want e-bad", skipped)
	}
	if !errors.Is(skipped[0].Reason, domain.ErrWeekdaysRequired) {
		t.Errorf("skip reason = %v, want ErrWeekdaysRequired", skipped[0].Reason)
	}
}

func TestExportSkipsEntryThatNeverOccurs(t *testing.T) {
	// Valid shape, but the two-day window holds no Wednesday.
	e := mustEntry(t, "e5",
		time.Date(2024, time.March, 1, 4, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 5, 0, 0, 0, time.UTC),
		domain.NewDate(2024, time.March, 1),
		domain.Recurrence{
			Kind:        domain.RecurrenceWeekly,
			Weekdays:    []time.Weekday{time.Wednesday},
			WindowStart: domain.NewDate(2024, time.March, 1),
			WindowEnd:   domain.NewDate(2024, time.March, 2),
		},
	)

	out, skipped, err := Export(testOwner(t), []domain.ScheduleEntry{e})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("Export() emitted an event for an entry with no occurrences\n%s", out)
	}
	if len(skipped) != 1 || skipped[0].EntryID != "e5" {
		t.Fatalf("Export() skipped = %v, want e5", skipped)
	}
}

func TestExportRejectsUnresolvableOwnerZone(t *testing.T) {
	owner := domain.Owner{ID: "o1", DisplayName: "Zeeshan", Timezone: "Mars/Olympus"}
	if _, _, err := Export(owner, nil); !errors.Is(err, domain.ErrInvalidTimezone) {
		t.Fatalf("Export() error = %v, want ErrInvalidTimezone", err)
	}
}
