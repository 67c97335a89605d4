package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/schedule"
)

// ShareRef points a viewer at one owner's calendar date. It is the complete
// shareable state: resolving it needs only read access to that owner's
// records and one aggregation call.
type ShareRef struct {
	OwnerID string
	Date    domain.Date
}

// String encodes the ref as "<ownerID>/<YYYY-MM-DD>" path segments.
func (r ShareRef) String() string {
	return r.OwnerID + "/" + r.Date.String()
}

// ParseShareRef decodes a ref produced by String.
func ParseShareRef(s string) (ShareRef, error) {
	ownerID, rest, ok := strings.Cut(s, "/")
	if !ok || ownerID == "" {
		return ShareRef{}, fmt.Errorf("share ref %q: %w", s, domain.ErrInvalidID)
	}
	day, err := domain.ParseDate(rest)
	if err != nil {
		return ShareRef{}, err
	}
	return ShareRef{OwnerID: ownerID, Date: day}, nil
}

// ShareURL joins the advertised base URL with a ref's API path.
func ShareURL(base string, ref ShareRef) string {
	return strings.TrimRight(base, "/") + "/api/v1/share/" + ref.String()
}

// ResolveShare returns the owner and the shared day view for a ref. Unknown
// owners surface ErrNotFound; a known owner with nothing on the date is a
// valid, empty view.
func (s *Service) ResolveShare(ctx context.Context, ref ShareRef) (domain.Owner, schedule.DaySchedule, error) {
	owner, err := s.repo.GetOwner(ctx, ref.OwnerID)
	if err != nil {
		return domain.Owner{}, schedule.DaySchedule{}, fmt.Errorf("resolve share owner %q: %w", ref.OwnerID, err)
	}
	entries, err := s.repo.ListEntries(ctx, ref.OwnerID)
	if err != nil {
		return domain.Owner{}, schedule.DaySchedule{}, err
	}
	return owner, schedule.OccurrencesOnDate(entries, ref.Date), nil
}
