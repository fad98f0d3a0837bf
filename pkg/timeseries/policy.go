package timeseries

import "github.com/matst80/energy-explorer/pkg/types"

const (
	maxDailyDays   = 90
	maxWeeklyDays  = 365
	maxMonthlyDays = 1095
)

// SelectUnit picks the granularity for a visible range given in milliseconds.
func SelectUnit(xmin, xmax float64) types.Unit {
	days := (xmax - xmin) / DayMillis
	switch {
	case days <= maxDailyDays:
		return types.UnitDay
	case days <= maxWeeklyDays:
		return types.UnitWeek
	case days <= maxMonthlyDays:
		return types.UnitMonth
	}
	return types.UnitQuarter
}
