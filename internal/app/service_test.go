package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

type fakeRepo struct {
	owners     map[string]domain.Owner
	activities map[string]domain.Activity
	entries    map[string]domain.ScheduleEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		owners:     map[string]domain.Owner{},
		activities: map[string]domain.Activity{},
		entries:    map[string]domain.ScheduleEntry{},
	}
}

func (f *fakeRepo) CreateOwner(_ context.Context, o domain.Owner) error {
	f.owners[o.ID] = o
	return nil
}

func (f *fakeRepo) GetOwner(_ context.Context, id string) (domain.Owner, error) {
	o, ok := f.owners[id]
	if !ok {
		return domain.Owner{}, ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) CreateActivity(_ context.Context, a domain.Activity) error {
	f.activities[a.ID] = a
	return nil
}

func (f *fakeRepo) GetActivity(_ context.Context, ownerID, id string) (domain.Activity, error) {
	a, ok := f.activities[id]
	if !ok || a.OwnerID != ownerID {
		return domain.Activity{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) ListActivities(_ context.Context, ownerID string) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, len(f.activities))
	for _, a := range f.activities {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteActivity(_ context.Context, ownerID, id string) error {
	a, ok := f.activities[id]
	if !ok || a.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(f.activities, id)
	return nil
}

func (f *fakeRepo) CreateEntry(_ context.Context, e domain.ScheduleEntry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakeRepo) GetEntry(_ context.Context, ownerID, id string) (domain.ScheduleEntry, error) {
	e, ok := f.entries[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ScheduleEntry{}, ErrNotFound
	}
	return e, nil
}

func (f *fakeRepo) ListEntries(_ context.Context, ownerID string) ([]domain.ScheduleEntry, error) {
	out := make([]domain.ScheduleEntry, 0, len(f.entries))
	for _, e := range f.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteEntry(_ context.Context, ownerID, id string) error {
	e, ok := f.entries[id]
	if !ok || e.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(f.entries, id)
	return nil
}

func newTestService(repo Repository, ids ...string) *Service {
	idx := 0
	return NewService(repo, func() string {
		id := ids[idx]
		idx++
		return id
	}, func() time.Time {
		return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestEnsureOwnerFirstRun(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "owner-1")

	owner, err := svc.EnsureOwner(context.Background(), "", "Zeeshan", "Asia/Karachi")
	if err != nil {
		t.Fatalf("EnsureOwner() error = %v", err)
	}
	if owner.ID != "owner-1" {
		t.Fatalf("ID = %q", owner.ID)
	}

	again, err := svc.EnsureOwner(context.Background(), "owner-1", "Zeeshan", "Asia/Karachi")
	if err != nil {
		t.Fatalf("second EnsureOwner() error = %v", err)
	}
	if again.ID != owner.ID {
		t.Fatalf("second run ID = %q", again.ID)
	}
	if len(repo.owners) != 1 {
		t.Fatalf("owners stored = %d", len(repo.owners))
	}
}

func TestEnsureOwnerKeepsConfiguredID(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "unused")

	owner, err := svc.EnsureOwner(context.Background(), "cfg-id", "Zeeshan", "UTC")
	if err != nil {
		t.Fatalf("EnsureOwner() error = %v", err)
	}
	if owner.ID != "cfg-id" {
		t.Fatalf("ID = %q", owner.ID)
	}
}

func TestEnsureOwnerBadZone(t *testing.T) {
	svc := newTestService(newFakeRepo(), "owner-1")
	if _, err := svc.EnsureOwner(context.Background(), "", "Zeeshan", "Mars/Olympus"); !errors.Is(err, domain.ErrInvalidTimezone) {
		t.Fatalf("EnsureOwner() error = %v", err)
	}
}

func seedOwnerAndActivity(t *testing.T, svc *Service) (domain.Owner, domain.Activity) {
	t.Helper()
	owner, err := svc.EnsureOwner(context.Background(), "", "Zeeshan", "Asia/Karachi")
	if err != nil {
		t.Fatalf("EnsureOwner() error = %v", err)
	}
	activity, err := svc.CreateActivity(context.Background(), owner.ID, "Gym", "#112233")
	if err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}
	return owner, activity
}

func TestCreateEntrySnapshotsActivityAndConvertsClocks(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "o1", "a1", "e1")
	owner, activity := seedOwnerAndActivity(t, svc)

	entry, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		OwnerID:    owner.ID,
		ActivityID: activity.ID,
		Date:       domain.NewDate(2024, time.March, 10),
		Start:      "09:00",
		End:        "10:30",
		Recurrence: domain.Recurrence{Kind: domain.RecurrenceNone},
	})
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if entry.ActivityName != "Gym" || entry.Color != "#112233" {
		t.Fatalf("snapshot = %q %q", entry.ActivityName, entry.Color)
	}
	// Karachi is UTC+5 year round.
	wantStart := time.Date(2024, time.March, 10, 4, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.March, 10, 5, 30, 0, 0, time.UTC)
	if !entry.StartUTC.Equal(wantStart) || !entry.EndUTC.Equal(wantEnd) {
		t.Fatalf("instants = %v, %v", entry.StartUTC, entry.EndUTC)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("entries stored = %d", len(repo.entries))
	}
}

func TestCreateEntryUnknownActivity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "o1", "a1", "e1")
	owner, _ := seedOwnerAndActivity(t, svc)

	_, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		OwnerID:    owner.ID,
		ActivityID: "missing",
		Date:       domain.NewDate(2024, time.March, 10),
		Start:      "09:00",
		End:        "10:00",
		Recurrence: domain.Recurrence{Kind: domain.RecurrenceNone},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatal("entry persisted despite unknown activity")
	}
}

func TestCreateEntryValidationGate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateEntryInput)
		wantErr error
	}{
		{"end before start", func(in *CreateEntryInput) {
			in.Start, in.End = "10:00", "09:00"
		}, domain.ErrInvalidTimeRange},
		{"end equals start", func(in *CreateEntryInput) {
			in.Start, in.End = "09:00", "09:00"
		}, domain.ErrInvalidTimeRange},
		{"recurring without window start", func(in *CreateEntryInput) {
			in.Recurrence = domain.Recurrence{Kind: domain.RecurrenceDaily}
		}, domain.ErrWindowStartRequired},
		{"inverted window", func(in *CreateEntryInput) {
			in.Recurrence = domain.Recurrence{
				Kind:        domain.RecurrenceDaily,
				WindowStart: domain.NewDate(2024, time.March, 20),
				WindowEnd:   domain.NewDate(2024, time.March, 10),
			}
		}, domain.ErrInvalidWindow},
		{"weekly without weekdays", func(in *CreateEntryInput) {
			in.Recurrence = domain.Recurrence{
				Kind:        domain.RecurrenceWeekly,
				WindowStart: domain.NewDate(2024, time.March, 1),
			}
		}, domain.ErrWeekdaysRequired},
		{"unparseable clock", func(in *CreateEntryInput) {
			in.Start = "9am"
		}, domain.ErrInvalidTimeRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo, "o1", "a1", "e1")
			owner, activity := seedOwnerAndActivity(t, svc)

			in := CreateEntryInput{
				OwnerID:    owner.ID,
				ActivityID: activity.ID,
				Date:       domain.NewDate(2024, time.March, 10),
				Start:      "09:00",
				End:        "10:00",
				Recurrence: domain.Recurrence{Kind: domain.RecurrenceNone},
			}
			tc.mutate(&in)
			if _, err := svc.CreateEntry(context.Background(), in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("CreateEntry() error = %v, want %v", err, tc.wantErr)
			}
			if len(repo.entries) != 0 {
				t.Fatal("invalid entry persisted")
			}
		})
	}
}

func TestDeleteActivityKeepsEntries(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "o1", "a1", "e1")
	owner, activity := seedOwnerAndActivity(t, svc)

	if _, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		OwnerID:    owner.ID,
		ActivityID: activity.ID,
		Date:       domain.NewDate(2024, time.March, 10),
		Start:      "09:00",
		End:        "10:00",
		Recurrence: domain.Recurrence{Kind: domain.RecurrenceNone},
	}); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}

	if err := svc.DeleteActivity(context.Background(), owner.ID, activity.ID); err != nil {
		t.Fatalf("DeleteActivity() error = %v", err)
	}
	entries, err := svc.ListEntries(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ActivityName != "Gym" {
		t.Fatalf("entries after activity delete = %+v", entries)
	}
}

func TestDeleteEntryNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), "o1")
	if err := svc.DeleteEntry(context.Background(), "o1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
}

func TestDayScheduleThroughService(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "o1", "a1", "e-late", "e-early")
	owner, activity := seedOwnerAndActivity(t, svc)

	day := domain.NewDate(2024, time.March, 10)
	for _, clocks := range [][2]string{{"11:00", "12:00"}, {"08:00", "09:00"}} {
		if _, err := svc.CreateEntry(context.Background(), CreateEntryInput{
			OwnerID:    owner.ID,
			ActivityID: activity.ID,
			Date:       day,
			Start:      clocks[0],
			End:        clocks[1],
			Recurrence: domain.Recurrence{Kind: domain.RecurrenceNone},
		}); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}
	}

	ds, err := svc.DaySchedule(context.Background(), owner.ID, day)
	if err != nil {
		t.Fatalf("DaySchedule() error = %v", err)
	}
	if len(ds.Occurrences) != 2 {
		t.Fatalf("occurrences = %d", len(ds.Occurrences))
	}
	if ds.Occurrences[0].EntryID != "e-early" || ds.Occurrences[1].EntryID != "e-late" {
		t.Fatalf("order = %q, %q", ds.Occurrences[0].EntryID, ds.Occurrences[1].EntryID)
	}
}

func TestMonthViewThroughService(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "o1", "a1", "e1")
	owner, activity := seedOwnerAndActivity(t, svc)

	if _, err := svc.CreateEntry(context.Background(), CreateEntryInput{
		OwnerID:    owner.ID,
		ActivityID: activity.ID,
		Date:       domain.NewDate(2024, time.March, 1),
		Start:      "09:00",
		End:        "10:00",
		Recurrence: domain.Recurrence{
			Kind:        domain.RecurrenceDaily,
			WindowStart: domain.NewDate(2024, time.March, 1),
			WindowEnd:   domain.NewDate(2024, time.March, 31),
		},
	}); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}

	mi, err := svc.MonthView(context.Background(), owner.ID, domain.YearMonth{Year: 2024, Month: time.March})
	if err != nil {
		t.Fatalf("MonthView() error = %v", err)
	}
	if len(mi.Colors) != 31 {
		t.Fatalf("March keys = %d", len(mi.Colors))
	}
	if got := mi.Colors[domain.NewDate(2024, time.March, 15)]; got != "#112233" {
		t.Fatalf("color = %q", got)
	}
}

func TestSnapshotSorted(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "o1", "a-zed", "a-alpha", "e1", "e2")
	owner, err := svc.EnsureOwner(context.Background(), "", "Zeeshan", "UTC")
	if err != nil {
		t.Fatalf("EnsureOwner() error = %v", err)
	}
	if _, err := svc.CreateActivity(context.Background(), owner.ID, "Zed", ""); err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}
	if _, err := svc.CreateActivity(context.Background(), owner.ID, "Alpha", ""); err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}

	snap, err := svc.Snapshot(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Owner.ID != owner.ID {
		t.Fatalf("snapshot owner = %q", snap.Owner.ID)
	}
	if len(snap.Activities) != 2 || snap.Activities[0].Name != "Alpha" {
		t.Fatalf("activities = %+v", snap.Activities)
	}
	if _, ok := snap.Activity("a-zed"); !ok {
		t.Fatal("Activity() lookup failed")
	}
}

type failingRepo struct {
	*fakeRepo
	err error
}

func (f failingRepo) ListEntries(context.Context, string) ([]domain.ScheduleEntry, error) {
	return nil, f.err
}

func TestDayScheduleErrorPropagation(t *testing.T) {
	expected := errors.New("boom")
	svc := NewService(failingRepo{fakeRepo: newFakeRepo(), err: expected}, nil, time.Now)
	if _, err := svc.DaySchedule(context.Background(), "o1", domain.NewDate(2024, time.March, 10)); !errors.Is(err, expected) {
		t.Fatalf("DaySchedule() error = %v", err)
	}
}
