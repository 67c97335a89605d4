// Package common provides transport-agnostic server contracts shared by the
// HTTP and MCP adapters: the app-facing service surface and the JSON views
// both transports serve.
package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/schedule"
)

// ScheduleService is the read surface the transports consume. The app service
// satisfies it; tests substitute stubs.
type ScheduleService interface {
	Owner(ctx context.Context, ownerID string) (domain.Owner, error)
	ListActivities(ctx context.Context, ownerID string) ([]domain.Activity, error)
	DaySchedule(ctx context.Context, ownerID string, day domain.Date) (schedule.DaySchedule, error)
	MonthView(ctx context.Context, ownerID string, month domain.YearMonth) (schedule.MonthIndicators, error)
}

// OccurrenceView is one resolved occurrence rendered for a viewer zone. Start
// and End are wall clocks in that zone; the UTC instants ride along unchanged
// so callers in other zones can re-render without another request.
type OccurrenceView struct {
	EntryID    string    `json:"entry_id"`
	ActivityID string    `json:"activity_id"`
	Activity   string    `json:"activity"`
	Color      string    `json:"color"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
}

// DayView is the day-schedule payload served to HTTP and MCP callers.
type DayView struct {
	OwnerID        string           `json:"owner_id"`
	Owner          string           `json:"owner"`
	Date           string           `json:"date"`
	Weekday        string           `json:"weekday"`
	Timezone       string           `json:"timezone"`
	Occurrences    []OccurrenceView `json:"occurrences"`
	SkippedEntries int              `json:"skipped_entries,omitempty"`
}

// NewDayView renders a resolved day in the given zone. Occurrences is always
// non-nil so an empty day serializes as [] rather than null.
func NewDayView(owner domain.Owner, day schedule.DaySchedule, loc *time.Location, zoneName string) DayView {
	occurrences := make([]OccurrenceView, 0, len(day.Occurrences))
	for _, o := range day.Occurrences {
		occurrences = append(occurrences, OccurrenceView{
			EntryID:    o.EntryID,
			ActivityID: o.ActivityID,
			Activity:   o.ActivityName,
			Color:      o.Color,
			Start:      schedule.Clock(o.StartUTC, loc),
			End:        schedule.Clock(o.EndUTC, loc),
			StartUTC:   o.StartUTC,
			EndUTC:     o.EndUTC,
		})
	}
	return DayView{
		OwnerID:        owner.ID,
		Owner:          owner.DisplayName,
		Date:           day.Date.String(),
		Weekday:        day.Date.Weekday().String(),
		Timezone:       zoneName,
		Occurrences:    occurrences,
		SkippedEntries: len(day.Skipped),
	}
}

// MonthView is the month-indicator payload: one color per date with at least
// one occurrence, keyed by "YYYY-MM-DD".
type MonthView struct {
	OwnerID        string            `json:"owner_id"`
	Month          string            `json:"month"`
	Days           int               `json:"days"`
	Colors         map[string]string `json:"colors"`
	SkippedEntries int               `json:"skipped_entries,omitempty"`
}

// NewMonthView renders month indicators for transport callers.
func NewMonthView(owner domain.Owner, mi schedule.MonthIndicators) MonthView {
	colors := make(map[string]string, len(mi.Colors))
	for day, color := range mi.Colors {
		colors[day.String()] = color
	}
	return MonthView{
		OwnerID:        owner.ID,
		Month:          mi.Month.String(),
		Days:           mi.Month.Days(),
		Colors:         colors,
		SkippedEntries: len(mi.Skipped),
	}
}

// ActivityView is one activity rendered for transport callers.
type ActivityView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// NewActivityViews renders an activity list, non-nil for JSON stability.
func NewActivityViews(activities []domain.Activity) []ActivityView {
	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, ActivityView{ID: a.ID, Name: a.Name, Color: a.Color, CreatedAt: a.CreatedAt})
	}
	return views
}

// ResolveZone picks the zone a response is rendered in: the caller's tz
// override when present, the owner's home zone otherwise.
func ResolveZone(owner domain.Owner, override string) (*time.Location, string, error) {
	override = strings.TrimSpace(override)
	if override != "" {
		loc, err := time.LoadLocation(override)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, override)
		}
		return loc, override, nil
	}
	loc, err := owner.Location()
	if err != nil {
		return nil, "", err
	}
	return loc, owner.Timezone, nil
}
