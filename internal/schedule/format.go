package schedule

import (
	"fmt"
	"time"

	"github.com/ZeeshanAK/my-availability-app/internal/domain"
)

const clockLayout = "15:04"

// Clock formats an instant as an HH:MM wall clock in the given zone.
func Clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(clockLayout)
}

// ClockRange formats a start/end pair as "HH:MM-HH:MM" in the given zone.
func ClockRange(start, end time.Time, loc *time.Location) string {
	return Clock(start, loc) + "-" + Clock(end, loc)
}

// ParseClock parses an HH:MM wall-clock string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse clock %q: %w", s, domain.ErrInvalidTimeRange)
	}
	return t.Hour(), t.Minute(), nil
}

// ToUTC converts a wall clock on a calendar date in the given zone to the
// corresponding UTC instant. Together with Clock it round-trips to the
// minute: formatting an instant in some zone and converting the parsed wall
// clock back on the same date in the same zone recovers the instant.
func ToUTC(day domain.Date, hour, minute int, loc *time.Location) time.Time {
	return time.Date(day.Year, day.Month, day.Day, hour, minute, 0, 0, loc).UTC()
}
