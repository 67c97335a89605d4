package domain

import (
	"strings"
	"time"
)

// DefaultActivityColor is assigned when an activity is created without an
// explicit color.
const DefaultActivityColor = "#5f87d7"

// Activity is a user-defined category of time use. Schedule entries reference
// activities by ID but carry their own snapshot of name and color, so
// deleting an activity never cascades into the entries placed under it.
type Activity struct {
	ID        string
	OwnerID   string
	Name      string
	Color     string
	CreatedAt time.Time
}

// NewActivity constructs a validated activity.
func NewActivity(id, ownerID, name, color string, now time.Time) (Activity, error) {
	id = strings.TrimSpace(id)
	ownerID = strings.TrimSpace(ownerID)
	name = strings.TrimSpace(name)

	if id == "" {
		return Activity{}, ErrInvalidID
	}
	if ownerID == "" {
		return Activity{}, ErrInvalidID
	}
	if name == "" {
		return Activity{}, ErrInvalidName
	}

	return Activity{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Color:     NormalizeColor(color),
		CreatedAt: now.UTC(),
	}, nil
}

// NormalizeColor trims a color value and substitutes the default for blanks.
// The value is otherwise opaque: the engine only carries it through to
// whatever renders it.
func NormalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultActivityColor
	}
	return color
}
