package eld

import (
	"time"

	"backend-tripplanner/internal/hos"
)

const gridStepMinutes = 15

// newGrid builds an empty 24-hour sheet of 15-minute cells.
func newGrid() []GridCell {
	grid := make([]GridCell, 0, 24*60/gridStepMinutes)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += gridStepMinutes {
			grid = append(grid, GridCell{Time: hour*100 + minute})
		}
	}
	return grid
}

// markGrid paints the cells between start and end with the given status.
// Spans that run past midnight are painted to the end of the sheet; the
// remainder belongs to the next day's sheet.
func markGrid(grid []GridCell, start, end time.Time, status hos.DutyStatus) {
	startCell := cellTime(start)
	endCell := cellTime(end)

	if start.Year() != end.Year() || start.YearDay() != end.YearDay() {
		endCell = 2345
	}
	for i := range grid {
		if grid[i].Time >= startCell && grid[i].Time <= endCell {
			grid[i].Status = string(status)
		}
	}
}

func cellTime(t time.Time) int {
	return t.Hour()*100 + (t.Minute()/gridStepMinutes)*gridStepMinutes
}

// gridMinutes converts an HHMM cell time to minutes since midnight.
func gridMinutes(hhmm int) int {
	return hhmm/100*60 + hhmm%100
}

// DutyEvents turns a stored sheet back into the status-change events the
// timeline is built from. Unpainted cells read as off duty.
func DutyEvents(grid []GridCell) []hos.Event {
	var events []hos.Event
	running := hos.OffDuty
	for _, cell := range grid {
		status := hos.OffDuty
		if cell.Status != "" {
			status = hos.ParseStatus(cell.Status)
		}
		if status != running {
			events = append(events, hos.Event{Time: gridMinutes(cell.Time), Status: status})
			running = status
		}
	}
	return events
}
