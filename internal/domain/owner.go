package domain

import (
	"fmt"
	"strings"
	"time"
)

// Owner is a schedule owner: an identifier plus a display name and the IANA
// zone their wall-clock inputs are interpreted in. The zone is a display and
// input concern only; matching operates on zone-naive calendar dates.
type Owner struct {
	ID          string
	DisplayName string
	Timezone    string
	CreatedAt   time.Time
}

// NewOwner constructs a validated owner. The timezone must resolve through
// the platform zone database.
func NewOwner(id, displayName, timezone string, now time.Time) (Owner, error) {
	id = strings.TrimSpace(id)
	displayName = strings.TrimSpace(displayName)
	timezone = strings.TrimSpace(timezone)

	if id == "" {
		return Owner{}, ErrInvalidID
	}
	if displayName == "" {
		return Owner{}, ErrInvalidName
	}
	if _, err := time.LoadLocation(timezone); err != nil || timezone == "" {
		return Owner{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}

	return Owner{
		ID:          id,
		DisplayName: displayName,
		Timezone:    timezone,
		CreatedAt:   now.UTC(),
	}, nil
}

// Location resolves the owner's zone.
func (o Owner) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, o.Timezone)
	}
	return loc, nil
}
