package timeseries

import (
	"time"

	"github.com/matst80/energy-explorer/pkg/types"
)

// Calendar decides where buckets start. Normalization happens in Location,
// weeks roll back to WeekStart.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func DefaultCalendar() Calendar {
	return Calendar{Location: time.Local, WeekStart: time.Sunday}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// BucketStart truncates t to the start of its unit. Unknown units fall back to days.
func (c Calendar) BucketStart(t time.Time, unit types.Unit) time.Time {
	loc := c.location()
	y, m, d := t.In(loc).Date()
	switch unit {
	case types.UnitWeek:
		midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
		offset := (int(midnight.Weekday()) - int(c.WeekStart) + 7) % 7
		return midnight.AddDate(0, 0, -offset)
	case types.UnitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case types.UnitQuarter:
		first := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, first, 1, 0, 0, 0, 0, loc)
	case types.UnitYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}
