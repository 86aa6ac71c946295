package hos

import (
	"math"
	"time"
)

// CycleDays is the length of the rolling regulatory window: the 70-hour rule
// counts the current day plus the seven before it.
const CycleDays = 8

// DayTotals carries one daily log's precomputed hour totals into the cycle
// aggregation. OnDuty holds the day's on-duty-not-driving hours; driving time
// is accounted separately and folded in by AggregateCycle.
type DayTotals struct {
	Date    time.Time
	Driving float64
	OnDuty  float64
}

// CycleTotals is the trailing-window sum. OnDuty includes driving time, per
// the regulatory definition of on-duty time.
type CycleTotals struct {
	Driving float64 `json:"driving"`
	OnDuty  float64 `json:"on_duty"`
}

// AggregateCycle sums driving and on-duty hours over the days whose date
// falls in the inclusive window [endDate-7d, endDate]. Days outside the
// window are ignored; an empty window yields zeros. Totals are returned at
// full precision, rounding is the caller's concern.
func AggregateCycle(days []DayTotals, endDate time.Time) CycleTotals {
	end := truncateDate(endDate)
	start := end.AddDate(0, 0, -(CycleDays - 1))

	var totals CycleTotals
	for _, d := range days {
		date := truncateDate(d.Date)
		if date.Before(start) || date.After(end) {
			continue
		}
		totals.Driving += d.Driving
		totals.OnDuty += d.Driving + d.OnDuty
	}
	return totals
}

// Round2 rounds an hour total to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
