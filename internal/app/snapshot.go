package app

import (
	"context"
	"sort"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

// Snapshot is a complete point-in-time copy of an owner's records. Displays
// aggregate from a snapshot and replace it wholesale on every change event;
// a snapshot is never patched in place.
type Snapshot struct {
	Owner      domain.Owner
	Activities []domain.Activity
	Entries    []domain.ScheduleEntry
}

// Snapshot loads the owner's current records in deterministic order.
func (s *Service) Snapshot(ctx context.Context, ownerID string) (Snapshot, error) {
	owner, err := s.repo.GetOwner(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	activities, err := s.repo.ListActivities(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	entries, err := s.repo.ListEntries(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Owner: owner, Activities: activities, Entries: entries}
	snap.sort()
	return snap, nil
}

// Activity resolves an activity from the snapshot by ID.
func (s *Snapshot) Activity(id string) (domain.Activity, bool) {
	for _, a := range s.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Activity{}, false
}

func (s *Snapshot) sort() {
	sort.Slice(s.Activities, func(i, j int) bool {
		a := s.Activities[i]
		b := s.Activities[j]
		if a.Name == b.Name {
			return a.ID < b.ID
		}
		return a.Name < b.Name
	})
	sort.Slice(s.Entries, func(i, j int) bool {
		a := s.Entries[i]
		b := s.Entries[j]
		if a.Anchor == b.Anchor {
			if a.StartUTC.Equal(b.StartUTC) {
				return a.ID < b.ID
			}
			return a.StartUTC.Before(b.StartUTC)
		}
		return a.Anchor.Before(b.Anchor)
	})
}
