package app

import (
	"context"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

// Repository is the storage port. Implementations deliver complete current
// record sets per owner; callers re-aggregate from scratch on every read
// instead of merging deltas.
type Repository interface {
	CreateOwner(context.Context, domain.Owner) error
	GetOwner(context.Context, string) (domain.Owner, error)

	CreateActivity(context.Context, domain.Activity) error
	GetActivity(context.Context, string, string) (domain.Activity, error)
	ListActivities(context.Context, string) ([]domain.Activity, error)
	DeleteActivity(context.Context, string, string) error

	CreateEntry(context.Context, domain.ScheduleEntry) error
	GetEntry(context.Context, string, string) (domain.ScheduleEntry, error)
	ListEntries(context.Context, string) ([]domain.ScheduleEntry, error)
	DeleteEntry(context.Context, string, string) error
}
