package eld

import (
	"math"
	"reflect"
	"testing"
	"time"

	"backend-tripplanner/internal/hos"
	"backend-tripplanner/internal/route"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func simpleWaypoints() []route.Waypoint {
	return []route.Waypoint{
		{LocationID: "loc-p", Type: route.WaypointPickup, Sequence: 0,
			EstimatedArrival: at(8, 0), PlannedDurationHrs: 1},
		{LocationID: "loc-d", Type: route.WaypointDropoff, Sequence: 1,
			EstimatedArrival: at(13, 0), PlannedDurationHrs: 1},
	}
}

func TestBuildLogsSingleDay(t *testing.T) {
	entries, dailies := buildLogs("trip-1", at(6, 0), "loc-c", simpleWaypoints())

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].Status != hos.Driving || !entries[0].StartTime.Equal(at(6, 0)) || !entries[0].EndTime.Equal(at(8, 0)) {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[0].LocationID != "loc-c" {
		t.Fatalf("driving to pickup should reference the starting location")
	}
	if entries[1].Status != hos.OnDutyNotDriving || entries[1].Activity != "Loading" {
		t.Fatalf("unexpected pickup entry %+v", entries[1])
	}
	if entries[2].Status != hos.Driving || !entries[2].StartTime.Equal(at(9, 0)) || !entries[2].EndTime.Equal(at(13, 0)) {
		t.Fatalf("unexpected second driving entry %+v", entries[2])
	}
	if entries[3].Activity != "Unloading" {
		t.Fatalf("unexpected dropoff entry %+v", entries[3])
	}

	if len(dailies) != 1 {
		t.Fatalf("expected one daily log, got %d", len(dailies))
	}
	d := dailies[0]
	if !closeTo(d.TotalDrivingHours, 6) || !closeTo(d.TotalOnDutyHours, 2) {
		t.Fatalf("unexpected totals driving=%f onDuty=%f", d.TotalDrivingHours, d.TotalOnDutyHours)
	}
	if d.StartingOdometer != 0 || d.EndingOdometer != 330 {
		t.Fatalf("unexpected odometer %d..%d", d.StartingOdometer, d.EndingOdometer)
	}
	if !d.Date.Equal(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", d.Date)
	}
}

func TestBuildLogsOvernightSplitsDays(t *testing.T) {
	waypoints := []route.Waypoint{
		{LocationID: "loc-p", Type: route.WaypointPickup, Sequence: 0,
			EstimatedArrival: at(8, 0), PlannedDurationHrs: 1},
		{LocationID: "loc-o", Type: route.WaypointOvernight, Sequence: 1,
			EstimatedArrival: at(20, 0), PlannedDurationHrs: 10},
		{LocationID: "loc-d", Type: route.WaypointDropoff, Sequence: 2,
			EstimatedArrival: at(10, 0).AddDate(0, 0, 1), PlannedDurationHrs: 1},
	}

	entries, dailies := buildLogs("trip-1", at(6, 0), "loc-c", waypoints)

	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(entries))
	}
	if entries[3].Status != hos.SleeperBerth {
		t.Fatalf("expected sleeper berth entry, got %+v", entries[3])
	}

	if len(dailies) != 2 {
		t.Fatalf("expected two daily logs, got %d", len(dailies))
	}

	day1, day2 := dailies[0], dailies[1]
	if !closeTo(day1.TotalDrivingHours, 13) || !closeTo(day1.TotalSleeperBerthHours, 4) {
		t.Fatalf("unexpected day 1 totals driving=%f sleeper=%f", day1.TotalDrivingHours, day1.TotalSleeperBerthHours)
	}
	if day1.EndingOdometer != 715 {
		t.Fatalf("unexpected day 1 ending odometer %d", day1.EndingOdometer)
	}
	if day2.StartingOdometer != day1.EndingOdometer {
		t.Fatalf("odometer should carry into the next day")
	}
	if !closeTo(day2.TotalSleeperBerthHours, 6) || !closeTo(day2.TotalDrivingHours, 4) {
		t.Fatalf("unexpected day 2 totals driving=%f sleeper=%f", day2.TotalDrivingHours, day2.TotalSleeperBerthHours)
	}
	if day2.EndingOdometer != 935 {
		t.Fatalf("unexpected day 2 ending odometer %d", day2.EndingOdometer)
	}
	if !day2.Date.Equal(time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day 2 date %v", day2.Date)
	}
}

func TestBuildLogsUnsortedWaypoints(t *testing.T) {
	sorted := simpleWaypoints()
	shuffled := []route.Waypoint{sorted[1], sorted[0]}

	wantEntries, wantDailies := buildLogs("trip-1", at(6, 0), "loc-c", sorted)
	gotEntries, gotDailies := buildLogs("trip-1", at(6, 0), "loc-c", shuffled)

	if !reflect.DeepEqual(wantEntries, gotEntries) || !reflect.DeepEqual(wantDailies, gotDailies) {
		t.Fatalf("waypoint order should not change the generated logs")
	}
}

func TestBuildLogsNoWaypoints(t *testing.T) {
	entries, dailies := buildLogs("trip-1", at(6, 0), "loc-c", nil)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
	if len(dailies) != 1 {
		t.Fatalf("expected a single empty daily log, got %d", len(dailies))
	}
	if dailies[0].EndingOdometer != 0 {
		t.Fatalf("expected zero odometer")
	}
}
