package eld

import (
	"time"

	"backend-tripplanner/internal/hos"
)

// LogEntry is one continuous stretch of a single duty status.
type LogEntry struct {
	ID         string         `json:"id"`
	TripID     string         `json:"trip_id"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	Status     hos.DutyStatus `json:"status"`
	LocationID string         `json:"location_id,omitempty"`
	Activity   string         `json:"activity,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

// GridCell is one 15-minute slot of a daily log sheet. Time is encoded as
// HHMM (8:45 -> 845); an empty status means off duty.
type GridCell struct {
	Time   int    `json:"time"`
	Status string `json:"status,omitempty"`
}

// DailyLog is one calendar day of a driver's record of duty status.
type DailyLog struct {
	ID                     string     `json:"id"`
	TripID                 string     `json:"trip_id"`
	Date                   time.Time  `json:"date"`
	StartingOdometer       int        `json:"starting_odometer"`
	EndingOdometer         int        `json:"ending_odometer"`
	TotalDrivingHours      float64    `json:"total_driving_hours"`
	TotalOnDutyHours       float64    `json:"total_on_duty_hours"`
	TotalOffDutyHours      float64    `json:"total_off_duty_hours"`
	TotalSleeperBerthHours float64    `json:"total_sleeper_berth_hours"`
	Grid                   []GridCell `json:"log_data"`
	CreatedAt              time.Time  `json:"created_at"`
}

// TotalMiles reports the day's driven distance when both odometer readings
// are recorded in the expected order.
func (d DailyLog) TotalMiles() (int, bool) {
	if d.EndingOdometer < d.StartingOdometer {
		return 0, false
	}
	return d.EndingOdometer - d.StartingOdometer, true
}
