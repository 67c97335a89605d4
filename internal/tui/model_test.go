package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/schedule"
)

type fakeService struct {
	owner      domain.Owner
	activities []domain.Activity
	entries    []domain.ScheduleEntry
	nextID     int
	err        error
}

func newFakeService(owner domain.Owner, activities []domain.Activity, entries []domain.ScheduleEntry) *fakeService {
	return &fakeService{owner: owner, activities: activities, entries: entries}
}

func (f *fakeService) ListActivities(context.Context, string) ([]domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Activity, len(f.activities))
	copy(out, f.activities)
	return out, nil
}

func (f *fakeService) CreateActivity(_ context.Context, ownerID, name, color string) (domain.Activity, error) {
	if f.err != nil {
		return domain.Activity{}, f.err
	}
	f.nextID++
	activity, err := domain.NewActivity(fmt.Sprintf("a-new-%d", f.nextID), ownerID, name, color, time.Now().UTC())
	if err != nil {
		return domain.Activity{}, err
	}
	f.activities = append(f.activities, activity)
	return activity, nil
}

func (f *fakeService) DeleteActivity(_ context.Context, _, activityID string) error {
	for i, a := range f.activities {
		if a.ID == activityID {
			f.activities = append(f.activities[:i], f.activities[i+1:]...)
			return nil
		}
	}
	return app.ErrNotFound
}

func (f *fakeService) CreateEntry(_ context.Context, in app.CreateEntryInput) (domain.ScheduleEntry, error) {
	if f.err != nil {
		return domain.ScheduleEntry{}, f.err
	}
	var activity domain.Activity
	found := false
	for _, a := range f.activities {
		if a.ID == in.ActivityID {
			activity = a
			found = true
			break
		}
	}
	if !found {
		return domain.ScheduleEntry{}, app.ErrNotFound
	}
	loc, err := f.owner.Location()
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	startHour, startMin, err := schedule.ParseClock(in.Start)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	endHour, endMin, err := schedule.ParseClock(in.End)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	f.nextID++
	entry, err := domain.NewScheduleEntry(domain.EntryInput{
		ID:           fmt.Sprintf("e-new-%d", f.nextID),
		OwnerID:      in.OwnerID,
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		Color:        activity.Color,
		StartUTC:     schedule.ToUTC(in.Date, startHour, startMin, loc),
		EndUTC:       schedule.ToUTC(in.Date, endHour, endMin, loc),
		Anchor:       in.Date,
		Recurrence:   in.Recurrence,
	}, time.Now().UTC())
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeService) DeleteEntry(_ context.Context, _, entryID string) error {
	for i, e := range f.entries {
		if e.ID == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return app.ErrNotFound
}

func (f *fakeService) DaySchedule(_ context.Context, _ string, day domain.Date) (schedule.DaySchedule, error) {
	if f.err != nil {
		return schedule.DaySchedule{}, f.err
	}
	return schedule.OccurrencesOnDate(f.entries, day), nil
}

func (f *fakeService) MonthView(_ context.Context, _ string, month domain.YearMonth) (schedule.MonthIndicators, error) {
	if f.err != nil {
		return schedule.MonthIndicators{}, f.err
	}
	return schedule.IndicatorsForMonth(f.entries, month), nil
}

func testOwner(t *testing.T) domain.Owner {
	t.Helper()
	owner, err := domain.NewOwner("o1", "Zeeshan", "Asia/Karachi", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewOwner() error = %v", err)
	}
	return owner
}

func testActivity(t *testing.T, id, name, color string) domain.Activity {
	t.Helper()
	activity, err := domain.NewActivity(id, "o1", name, color, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewActivity() error = %v", err)
	}
	return activity
}

func testEntry(t *testing.T, id string, activity domain.Activity, anchor domain.Date, start, end time.Time, rec domain.Recurrence) domain.ScheduleEntry {
	t.Helper()
	entry, err := domain.NewScheduleEntry(domain.EntryInput{
		ID:           id,
		OwnerID:      "o1",
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		Color:        activity.Color,
		StartUTC:     start,
		EndUTC:       end,
		Anchor:       anchor,
		Recurrence:   rec,
	}, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewScheduleEntry(%s) error = %v", id, err)
	}
	return entry
}

// fixtureService returns a service holding one Gym entry on Sunday
// 2024-03-10, 09:00-10:30 Karachi time.
func fixtureService(t *testing.T) *fakeService {
	t.Helper()
	gym := testActivity(t, "a1", "Gym", "#112233")
	spanish := testActivity(t, "a2", "Spanish", "#22aa44")
	entry := testEntry(t, "e1", gym, domain.NewDate(2024, time.March, 10),
		time.Date(2024, 3, 10, 4, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 5, 30, 0, 0, time.UTC),
		domain.Recurrence{Kind: domain.RecurrenceNone})
	return newFakeService(testOwner(t), []domain.Activity{gym, spanish}, []domain.ScheduleEntry{entry})
}

func fixtureModel(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := NewModel(svc, svc.owner, WithInitialDate(domain.NewDate(2024, time.March, 10)))
	return loadReadyModel(t, m)
}

func TestModelLoadAndNavigation(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	if len(m.activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(m.activities))
	}
	if len(m.day.Occurrences) != 1 || m.day.Occurrences[0].ActivityName != "Gym" {
		t.Fatalf("unexpected day occurrences: %#v", m.day.Occurrences)
	}
	if m.month != (domain.YearMonth{Year: 2024, Month: time.March}) {
		t.Fatalf("unexpected month %v", m.month)
	}

	m = applyMsg(t, m, keyRune('l'))
	if m.focused != domain.NewDate(2024, time.March, 11) {
		t.Fatalf("expected 2024-03-11 after next day, got %s", m.focused)
	}
	m = applyMsg(t, m, keyRune('h'))
	if m.focused != domain.NewDate(2024, time.March, 10) {
		t.Fatalf("expected 2024-03-10 after prev day, got %s", m.focused)
	}
	m = applyMsg(t, m, keyRune('j'))
	if m.focused != domain.NewDate(2024, time.March, 17) {
		t.Fatalf("expected 2024-03-17 after week forward, got %s", m.focused)
	}
	m = applyMsg(t, m, keyRune('H'))
	if m.focused != domain.NewDate(2024, time.February, 17) {
		t.Fatalf("expected 2024-02-17 after prev month, got %s", m.focused)
	}
	if m.month != (domain.YearMonth{Year: 2024, Month: time.February}) {
		t.Fatalf("expected month to follow focus, got %v", m.month)
	}
	m = applyMsg(t, m, keyRune('t'))
	if m.focused != m.today {
		t.Fatalf("expected today %s after t, got %s", m.today, m.focused)
	}
}

func TestModelMonthMoveClampsDay(t *testing.T) {
	svc := fixtureService(t)
	m := NewModel(svc, svc.owner, WithInitialDate(domain.NewDate(2024, time.March, 31)))
	m = loadReadyModel(t, m)

	m = applyMsg(t, m, keyRune('L'))
	if m.focused != domain.NewDate(2024, time.April, 30) {
		t.Fatalf("expected day clamped to 2024-04-30, got %s", m.focused)
	}
}

func TestModelMouseWheelMovesWeeks(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if m.focused != domain.NewDate(2024, time.March, 17) {
		t.Fatalf("expected wheel down to move a week forward, got %s", m.focused)
	}
	m = applyMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if m.focused != domain.NewDate(2024, time.March, 10) {
		t.Fatalf("expected wheel up to move a week back, got %s", m.focused)
	}
}

func TestModelAddEntryForm(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, keyRune('a'))
	if m.mode != modeAddEntry {
		t.Fatalf("expected add entry mode, got %v", m.mode)
	}
	if m.formFocus != entryFieldStart {
		t.Fatalf("expected start field focused, got %d", m.formFocus)
	}
	m = typeText(t, m, "11:00")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "12:00")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeNone {
		t.Fatalf("expected form closed, got mode %v", m.mode)
	}
	if len(svc.entries) != 2 {
		t.Fatalf("expected 2 entries after add, got %d", len(svc.entries))
	}
	created := svc.entries[1]
	if created.Recurrence.Kind != domain.RecurrenceNone {
		t.Fatalf("expected one-off entry, got %q", created.Recurrence.Kind)
	}
	if created.Anchor != domain.NewDate(2024, time.March, 10) {
		t.Fatalf("expected anchor on focused day, got %s", created.Anchor)
	}
	// 11:00 Karachi is 06:00 UTC.
	if created.StartUTC != time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected start instant %v", created.StartUTC)
	}
	if m.status != "entry added" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if len(m.day.Occurrences) != 2 {
		t.Fatalf("expected reloaded day with 2 occurrences, got %d", len(m.day.Occurrences))
	}
}

func TestModelAddWeeklyEntry(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, keyRune('a'))
	m = typeText(t, m, "18:00")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "19:00")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab}) // repeat picker
	m = applyMsg(t, m, keyRune('l'))                      // daily
	m = applyMsg(t, m, keyRune('l'))                      // weekly
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "mon,wed")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "2024-06-30")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(svc.entries) != 2 {
		t.Fatalf("expected weekly entry created, got %d entries (status %q)", len(svc.entries), m.status)
	}
	created := svc.entries[1]
	if created.Recurrence.Kind != domain.RecurrenceWeekly {
		t.Fatalf("expected weekly recurrence, got %q", created.Recurrence.Kind)
	}
	wantDays := []time.Weekday{time.Monday, time.Wednesday}
	if len(created.Recurrence.Weekdays) != 2 ||
		created.Recurrence.Weekdays[0] != wantDays[0] || created.Recurrence.Weekdays[1] != wantDays[1] {
		t.Fatalf("unexpected weekday set %v", created.Recurrence.Weekdays)
	}
	if created.Recurrence.WindowStart != domain.NewDate(2024, time.March, 10) {
		t.Fatalf("expected window anchored on focused day, got %s", created.Recurrence.WindowStart)
	}
	if created.Recurrence.WindowEnd != domain.NewDate(2024, time.June, 30) {
		t.Fatalf("unexpected window end %s", created.Recurrence.WindowEnd)
	}
	// 18:00 Karachi is 13:00 UTC.
	if created.StartUTC.Hour() != 13 {
		t.Fatalf("expected zone-converted start, got %v", created.StartUTC)
	}
}

func TestModelEntryFormValidation(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeAddEntry {
		t.Fatal("expected form to stay open on missing clocks")
	}
	if !strings.Contains(m.status, "start and end times required") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected escape to close form, got mode %v", m.mode)
	}
	if m.status != "cancelled" {
		t.Fatalf("unexpected status %q", m.status)
	}

	empty := newFakeService(testOwner(t), nil, nil)
	m2 := loadReadyModel(t, NewModel(empty, empty.owner, WithInitialDate(domain.NewDate(2024, time.March, 10))))
	m2 = applyMsg(t, m2, keyRune('a'))
	if m2.mode != modeNone {
		t.Fatal("expected no form without activities")
	}
	if !strings.Contains(m2.status, "create an activity first") {
		t.Fatalf("unexpected status %q", m2.status)
	}
}

func TestModelWeeklyNeedsWeekdays(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, keyRune('a'))
	m = typeText(t, m, "18:00")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "19:00")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeAddEntry {
		t.Fatal("expected form to stay open")
	}
	if !strings.Contains(m.status, "weekly entries need weekdays") {
		t.Fatalf("unexpected status %q", m.status)
	}
	if len(svc.entries) != 1 {
		t.Fatalf("expected no entry created, got %d", len(svc.entries))
	}
}

func TestModelAddActivityForm(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, keyRune('A'))
	if m.mode != modeAddActivity {
		t.Fatalf("expected add activity mode, got %v", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(m.status, "name required") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = typeText(t, m, "Yoga")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "#aabbcc")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(svc.activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(svc.activities))
	}
	added := svc.activities[2]
	if added.Name != "Yoga" || added.Color != "#aabbcc" {
		t.Fatalf("unexpected activity %#v", added)
	}
	if m.status != "activity added" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelDeleteEntryConfirm(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	m = applyMsg(t, m, keyRune('n'))
	if m.mode != modeNone || len(svc.entries) != 1 {
		t.Fatal("expected cancel to keep the entry")
	}

	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if len(svc.entries) != 0 {
		t.Fatalf("expected entry deleted, got %d", len(svc.entries))
	}
	if m.status != "entry deleted" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if len(m.day.Occurrences) != 0 {
		t.Fatalf("expected reloaded empty day, got %d occurrences", len(m.day.Occurrences))
	}

	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeNone || !strings.Contains(m.status, "nothing scheduled") {
		t.Fatalf("expected no-op delete, got mode %v status %q", m.mode, m.status)
	}
}

func TestModelDeleteActivityKeepsSnapshot(t *testing.T) {
	svc := fixtureService(t)
	m := fixtureModel(t, svc)

	m = applyMsg(t, m, keyRune('X'))
	if m.mode != modeDeleteActivity {
		t.Fatalf("expected delete activity mode, got %v", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter}) // deletes Gym
	if len(svc.activities) != 1 || svc.activities[0].Name != "Spanish" {
		t.Fatalf("unexpected activities %#v", svc.activities)
	}
	// The Gym entry keeps its snapshot and stays on the calendar.
	if len(m.day.Occurrences) != 1 || m.day.Occurrences[0].ActivityName != "Gym" {
		t.Fatalf("expected snapshot occurrence to survive, got %#v", m.day.Occurrences)
	}
}

func TestModelOccurrenceSelection(t *testing.T) {
	svc := fixtureService(t)
	gym := svc.activities[0]
	svc.entries = append(svc.entries, testEntry(t, "e2", gym, domain.NewDate(2024, time.March, 10),
		time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		domain.Recurrence{Kind: domain.RecurrenceNone}))
	m := fixtureModel(t, svc)

	if len(m.day.Occurrences) != 2 || m.selectedOcc != 0 {
		t.Fatalf("unexpected initial selection %d of %d", m.selectedOcc, len(m.day.Occurrences))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.selectedOcc != 1 {
		t.Fatalf("expected selection 1, got %d", m.selectedOcc)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.selectedOcc != 0 {
		t.Fatalf("expected selection wrap to 0, got %d", m.selectedOcc)
	}
}

func TestModelCopyShareLink(t *testing.T) {
	svc := fixtureService(t)
	m := NewModel(svc, svc.owner,
		WithInitialDate(domain.NewDate(2024, time.March, 10)),
		WithShareBase("http://example.test:8390"))
	m = loadReadyModel(t, m)

	m = applyMsg(t, m, keyRune('y'))
	// The URL lands in the status line whether or not a clipboard exists.
	if !strings.Contains(m.status, "http://example.test:8390/api/v1/share/o1/2024-03-10") {
		t.Fatalf("expected share URL in status, got %q", m.status)
	}
}

func TestModelFeedTriggersReload(t *testing.T) {
	svc := fixtureService(t)
	feed := app.NewFeed()
	m := NewModel(svc, svc.owner,
		WithInitialDate(domain.NewDate(2024, time.March, 10)),
		WithFeed(feed))
	m = applyMsg(t, m, m.loadData())
	m = applyMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	feed.Publish(app.Event{OwnerID: "o1", Kind: app.EventEntry, Op: app.OpCreated})
	wait := m.waitFeed()
	if wait == nil {
		t.Fatal("expected feed wait command")
	}
	msg := wait()
	if _, ok := msg.(feedMsg); !ok {
		t.Fatalf("expected feedMsg, got %T", msg)
	}

	gym := svc.activities[0]
	svc.entries = append(svc.entries, testEntry(t, "e2", gym, domain.NewDate(2024, time.March, 10),
		time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		domain.Recurrence{Kind: domain.RecurrenceNone}))
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected reload command after feed event")
	}
	m = applyMsg(t, m, m.loadData())
	if len(m.day.Occurrences) != 2 {
		t.Fatalf("expected reloaded day with 2 occurrences, got %d", len(m.day.Occurrences))
	}
}

func TestModelLoadErrorAndRetry(t *testing.T) {
	svc := fixtureService(t)
	svc.err = context.DeadlineExceeded
	m := loadReadyModel(t, NewModel(svc, svc.owner, WithInitialDate(domain.NewDate(2024, time.March, 10))))
	if m.err == nil {
		t.Fatal("expected load error")
	}
	v := m.View()
	if v.Content == nil || v.MouseMode != tea.MouseModeCellMotion {
		t.Fatal("expected error view with mouse enabled")
	}

	svc.err = nil
	m = applyMsg(t, m, keyRune('r'))
	if m.err != nil {
		t.Fatalf("expected retry to clear error, got %v", m.err)
	}
	if len(m.day.Occurrences) != 1 {
		t.Fatalf("expected day loaded after retry, got %d occurrences", len(m.day.Occurrences))
	}
}

func TestModelQuitKey(t *testing.T) {
	svc := fixtureService(t)
	m := NewModel(svc, svc.owner)
	updated, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if updated == nil {
		t.Fatal("expected model return value")
	}
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
}

func TestModelViewStates(t *testing.T) {
	svc := fixtureService(t)
	m := NewModel(svc, svc.owner)
	v := m.View()
	if v.Content == nil || v.MouseMode != tea.MouseModeCellMotion {
		t.Fatal("expected loading view with mouse enabled")
	}

	m = fixtureModel(t, svc)
	v = m.View()
	if v.Content == nil {
		t.Fatal("expected ready view content")
	}
	if !v.AltScreen {
		t.Fatal("expected alt screen enabled")
	}
}

func TestModeLabels(t *testing.T) {
	m := Model{}
	if m.modeLabel() != "normal" {
		t.Fatalf("mode label mismatch: %q", m.modeLabel())
	}
	m.mode = modeAddEntry
	if m.modeLabel() != "add entry" {
		t.Fatalf("mode label mismatch: %q", m.modeLabel())
	}
	m.mode = modeConfirmDelete
	if m.modeLabel() != "confirm delete" {
		t.Fatalf("mode label mismatch: %q", m.modeLabel())
	}
}

func TestMonthWeeksLayout(t *testing.T) {
	// March 2024 starts on a Friday.
	weeks := monthWeeks(domain.YearMonth{Year: 2024, Month: time.March}, time.Sunday)
	if len(weeks) != 6 {
		t.Fatalf("expected 6 week rows, got %d", len(weeks))
	}
	if weeks[0][5] != 1 {
		t.Fatalf("expected day 1 in the friday column, got row %v", weeks[0])
	}
	if weeks[5][0] != 31 {
		t.Fatalf("expected day 31 opening the last row, got %v", weeks[5])
	}

	weeks = monthWeeks(domain.YearMonth{Year: 2024, Month: time.March}, time.Monday)
	if weeks[0][4] != 1 {
		t.Fatalf("expected monday-start grid to shift day 1, got row %v", weeks[0])
	}
}

func TestParseWeekdaysInput(t *testing.T) {
	days, err := parseWeekdaysInput("mon,wed")
	if err != nil {
		t.Fatalf("parseWeekdaysInput() error = %v", err)
	}
	if len(days) != 2 || days[0] != time.Monday || days[1] != time.Wednesday {
		t.Fatalf("unexpected weekdays %v", days)
	}

	days, err = parseWeekdaysInput("Saturday, sunday")
	if err != nil {
		t.Fatalf("parseWeekdaysInput() error = %v", err)
	}
	if len(days) != 2 || days[0] != time.Saturday || days[1] != time.Sunday {
		t.Fatalf("unexpected weekdays %v", days)
	}

	if _, err := parseWeekdaysInput("mon,noday"); err == nil {
		t.Fatal("expected error for unknown weekday")
	}
	if days, err := parseWeekdaysInput(""); err != nil || days != nil {
		t.Fatalf("expected empty parse to be nil, got %v %v", days, err)
	}
}

func TestHelpers(t *testing.T) {
	if clamp(5, 0, 1) != 1 {
		t.Fatal("clamp upper bound failed")
	}
	if clamp(-1, 0, 1) != 0 {
		t.Fatal("clamp lower bound failed")
	}
	if clamp(0, 2, 1) != 2 {
		t.Fatal("clamp invalid range failed")
	}
	if truncate("abc", 0) != "" {
		t.Fatal("truncate max 0 failed")
	}
	if truncate("abcdef", 3) != "ab…" {
		t.Fatal("truncate ellipsis failed")
	}
	if fitLines("a\nb\nc", 2) != "a\n…" {
		t.Fatalf("fitLines overflow failed: %q", fitLines("a\nb\nc", 2))
	}
	if fitLines("a", 3) != "a\n\n" {
		t.Fatalf("fitLines padding failed: %q", fitLines("a", 3))
	}
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = applyMsg(t, m, keyRune(r))
	}
	return m
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		if msg == nil {
			return out
		}
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
