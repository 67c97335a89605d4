package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/schedule"
)

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service wires creation-time validation, activity snapshotting, and
// schedule aggregation over the storage port. Reads hand complete record
// sets to the pure engine in internal/schedule; the service itself keeps no
// state beyond its collaborators.
type Service struct {
	repo  Repository
	idGen IDGenerator
	clock Clock
	feed  *Feed
}

// NewService constructs a new service.
func NewService(repo Repository, idGen IDGenerator, clock Clock) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, idGen: idGen, clock: clock, feed: NewFeed()}
}

// Feed exposes the change feed. Subscribers reload a snapshot per event.
func (s *Service) Feed() *Feed { return s.feed }

// EnsureOwner loads the owner with the given ID, creating it on first run.
// An empty ID asks for a brand new owner; callers persist the returned ID
// for subsequent runs.
func (s *Service) EnsureOwner(ctx context.Context, id, name, timezone string) (domain.Owner, error) {
	if id != "" {
		owner, err := s.repo.GetOwner(ctx, id)
		if err == nil {
			return owner, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return domain.Owner{}, err
		}
	} else {
		id = s.idGen()
	}
	owner, err := domain.NewOwner(id, name, timezone, s.clock())
	if err != nil {
		return domain.Owner{}, err
	}
	if err := s.repo.CreateOwner(ctx, owner); err != nil {
		return domain.Owner{}, err
	}
	s.feed.Publish(Event{OwnerID: owner.ID, Kind: EventOwner, Op: OpCreated})
	return owner, nil
}

// Owner loads one owner by ID.
func (s *Service) Owner(ctx context.Context, ownerID string) (domain.Owner, error) {
	return s.repo.GetOwner(ctx, ownerID)
}

// CreateActivity creates an activity for the owner.
func (s *Service) CreateActivity(ctx context.Context, ownerID, name, color string) (domain.Activity, error) {
	activity, err := domain.NewActivity(s.idGen(), ownerID, name, color, s.clock())
	if err != nil {
		return domain.Activity{}, err
	}
	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		return domain.Activity{}, err
	}
	s.feed.Publish(Event{OwnerID: ownerID, Kind: EventActivity, Op: OpCreated})
	return activity, nil
}

// ListActivities returns the owner's activities.
func (s *Service) ListActivities(ctx context.Context, ownerID string) ([]domain.Activity, error) {
	return s.repo.ListActivities(ctx, ownerID)
}

// DeleteActivity removes an activity. Entries referencing it keep their
// name/color snapshot and stay on the calendar.
func (s *Service) DeleteActivity(ctx context.Context, ownerID, activityID string) error {
	if err := s.repo.DeleteActivity(ctx, ownerID, activityID); err != nil {
		return err
	}
	s.feed.Publish(Event{OwnerID: ownerID, Kind: EventActivity, Op: OpDeleted})
	return nil
}

// CreateEntryInput holds input values for create entry operations. Start and
// End are HH:MM wall clocks on Date in the owner's zone.
type CreateEntryInput struct {
	OwnerID    string
	ActivityID string
	Date       domain.Date
	Start      string
	End        string
	Recurrence domain.Recurrence
}

// CreateEntry validates the input, snapshots the referenced activity's name
// and color into the entry, converts the wall clocks to UTC instants via the
// owner's zone, and persists the result. Nothing partial is stored on
// failure.
func (s *Service) CreateEntry(ctx context.Context, in CreateEntryInput) (domain.ScheduleEntry, error) {
	owner, err := s.repo.GetOwner(ctx, in.OwnerID)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("resolve owner %q: %w", in.OwnerID, err)
	}
	loc, err := owner.Location()
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	activity, err := s.repo.GetActivity(ctx, in.OwnerID, in.ActivityID)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("resolve activity %q: %w", in.ActivityID, err)
	}

	startHour, startMin, err := schedule.ParseClock(in.Start)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	endHour, endMin, err := schedule.ParseClock(in.End)
	if err != nil {
		return domain.ScheduleEntry{}, err
	}

	entry, err := domain.NewScheduleEntry(domain.EntryInput{
		ID:           s.idGen(),
		OwnerID:      in.OwnerID,
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		Color:        activity.Color,
		StartUTC:     schedule.ToUTC(in.Date, startHour, startMin, loc),
		EndUTC:       schedule.ToUTC(in.Date, endHour, endMin, loc),
		Anchor:       in.Date,
		Recurrence:   in.Recurrence,
	}, s.clock())
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return domain.ScheduleEntry{}, err
	}
	s.feed.Publish(Event{OwnerID: in.OwnerID, Kind: EventEntry, Op: OpCreated})
	return entry, nil
}

// ListEntries returns the owner's full entry set.
func (s *Service) ListEntries(ctx context.Context, ownerID string) ([]domain.ScheduleEntry, error) {
	return s.repo.ListEntries(ctx, ownerID)
}

// DeleteEntry removes one entry by ID. Entries are immutable otherwise.
func (s *Service) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	if err := s.repo.DeleteEntry(ctx, ownerID, entryID); err != nil {
		return err
	}
	s.feed.Publish(Event{OwnerID: ownerID, Kind: EventEntry, Op: OpDeleted})
	return nil
}

// DaySchedule resolves the owner's entries against one date.
func (s *Service) DaySchedule(ctx context.Context, ownerID string, day domain.Date) (schedule.DaySchedule, error) {
	entries, err := s.repo.ListEntries(ctx, ownerID)
	if err != nil {
		return schedule.DaySchedule{}, err
	}
	return schedule.OccurrencesOnDate(entries, day), nil
}

// MonthView resolves the owner's entries against every day of a month.
func (s *Service) MonthView(ctx context.Context, ownerID string, month domain.YearMonth) (schedule.MonthIndicators, error) {
	entries, err := s.repo.ListEntries(ctx, ownerID)
	if err != nil {
		return schedule.MonthIndicators{}, err
	}
	return schedule.IndicatorsForMonth(entries, month), nil
}
