package eld

import (
	"math"
	"sort"
	"time"

	"backend-tripplanner/internal/hos"
	"backend-tripplanner/internal/route"
)

const avgSpeedMph = 55

// buildLogs walks the planned waypoints chronologically and reconstructs the
// driver's record of duty status: log entries for every status stretch plus
// one daily log sheet per calendar day. The driver is assumed to be driving
// between consecutive stops, starting from the trip start time.
func buildLogs(tripID string, startTime time.Time, currentLocationID string, waypoints []route.Waypoint) ([]LogEntry, []DailyLog) {
	events := make([]route.Waypoint, 0, len(waypoints))
	events = append(events, waypoints...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EstimatedArrival.Before(events[j].EstimatedArrival)
	})

	var entries []LogEntry
	var dailies []DailyLog

	current := newDailyLog(tripID, startTime, 0)
	currentStatus := hos.Driving
	statusStart := startTime
	currentLoc := currentLocationID

	for _, ev := range events {
		// Close the stretch leading up to this stop.
		if ev.EstimatedArrival.After(statusStart) {
			entries = append(entries, LogEntry{
				TripID:     tripID,
				StartTime:  statusStart,
				EndTime:    ev.EstimatedArrival,
				Status:     currentStatus,
				LocationID: currentLoc,
			})
			if currentStatus == hos.Driving {
				current.TotalDrivingHours += ev.EstimatedArrival.Sub(statusStart).Hours()
			}
			markGrid(current.Grid, statusStart, ev.EstimatedArrival, currentStatus)
		}

		stopEnd := ev.EstimatedArrival.Add(time.Duration(ev.PlannedDurationHrs * float64(time.Hour)))
		stopStatus, activity, notes := stopDetails(ev.Type)

		entries = append(entries, LogEntry{
			TripID:     tripID,
			StartTime:  ev.EstimatedArrival,
			EndTime:    stopEnd,
			Status:     stopStatus,
			LocationID: ev.LocationID,
			Activity:   activity,
			Notes:      notes,
		})

		switch stopStatus {
		case hos.SleeperBerth:
			// Overnight rests can cross midnight; split the hours across
			// sheets and roll the odometer forward at each boundary.
			cursor := ev.EstimatedArrival
			for cursor.Before(stopEnd) {
				next := midnightAfter(cursor)
				segEnd := stopEnd
				if next.Before(stopEnd) {
					segEnd = next
				}
				current.TotalSleeperBerthHours += segEnd.Sub(cursor).Hours()
				markGrid(current.Grid, cursor, segEnd, hos.SleeperBerth)
				if segEnd.Before(stopEnd) {
					current.EndingOdometer = calcOdometer(current.StartingOdometer, current.TotalDrivingHours)
					dailies = append(dailies, current)
					current = newDailyLog(tripID, segEnd, current.EndingOdometer)
				}
				cursor = segEnd
			}
		case hos.OnDutyNotDriving:
			current.TotalOnDutyHours += ev.PlannedDurationHrs
			markGrid(current.Grid, ev.EstimatedArrival, stopEnd, stopStatus)
		default:
			current.TotalOffDutyHours += ev.PlannedDurationHrs
			markGrid(current.Grid, ev.EstimatedArrival, stopEnd, stopStatus)
		}

		if ev.Type == route.WaypointDropoff {
			currentStatus = hos.OffDuty
		} else {
			currentStatus = hos.Driving
		}
		statusStart = stopEnd
		currentLoc = ev.LocationID
	}

	current.EndingOdometer = calcOdometer(current.StartingOdometer, current.TotalDrivingHours)
	dailies = append(dailies, current)

	return entries, dailies
}

func stopDetails(waypointType string) (hos.DutyStatus, string, string) {
	switch waypointType {
	case route.WaypointPickup:
		return hos.OnDutyNotDriving, "Loading", "Loading at pickup location"
	case route.WaypointDropoff:
		return hos.OnDutyNotDriving, "Unloading", "Unloading at delivery location"
	case route.WaypointFuel:
		return hos.OnDutyNotDriving, "Fueling", "Fuel stop"
	case route.WaypointOvernight:
		return hos.SleeperBerth, "", "10-hour reset"
	default:
		return hos.OffDuty, "", "Mandatory rest break"
	}
}

func newDailyLog(tripID string, at time.Time, startOdometer int) DailyLog {
	return DailyLog{
		TripID:           tripID,
		Date:             time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
		StartingOdometer: startOdometer,
		Grid:             newGrid(),
	}
}

func midnightAfter(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

func calcOdometer(start int, drivingHours float64) int {
	return start + int(math.Round(drivingHours*avgSpeedMph))
}
