package eld

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend-tripplanner/internal/db"
	"backend-tripplanner/internal/hos"
	"backend-tripplanner/internal/route"
	"backend-tripplanner/internal/stream"

	"github.com/google/uuid"
)

// ErrMissingDate marks a stored daily log without a date; such a sheet cannot
// be placed on a timeline or in a cycle window.
var ErrMissingDate = errors.New("daily log missing date")

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// Generate rebuilds the trip's log entries and daily log sheets from its
// planned waypoints, replacing whatever was generated before. Watchers of the
// trip's status feed get the fresh day totals.
func (s *Service) Generate(ctx context.Context, tripID, userID string) ([]LogEntry, []DailyLog, error) {
	var startTime time.Time
	var currentLocationID string
	row := s.db.QueryRow(ctx, `
		SELECT start_time, current_location_id FROM trips WHERE id=$1 AND user_id=$2
	`, tripID, userID)
	if err := row.Scan(&startTime, &currentLocationID); err != nil {
		return nil, nil, err
	}

	waypoints, err := s.tripWaypoints(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	entries, dailies := buildLogs(tripID, startTime, currentLocationID, waypoints)

	if _, err := s.db.Exec(ctx, `DELETE FROM log_entries WHERE trip_id=$1`, tripID); err != nil {
		return nil, nil, err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM daily_logs WHERE trip_id=$1`, tripID); err != nil {
		return nil, nil, err
	}

	for i := range entries {
		entries[i].ID = uuid.NewString()
		if _, err := s.db.Exec(ctx, `
			INSERT INTO log_entries (id, trip_id, start_time, end_time, status, location_id, activity, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, entries[i].ID, tripID, entries[i].StartTime, entries[i].EndTime, string(entries[i].Status),
			entries[i].LocationID, entries[i].Activity, entries[i].Notes); err != nil {
			return nil, nil, err
		}
	}

	for i := range dailies {
		dailies[i].ID = uuid.NewString()
		gridJSON, err := json.Marshal(dailies[i].Grid)
		if err != nil {
			return nil, nil, err
		}
		if _, err := s.db.Exec(ctx, `
			INSERT INTO daily_logs (id, trip_id, date, starting_odometer, ending_odometer,
				total_driving_hours, total_on_duty_hours, total_off_duty_hours, total_sleeper_berth_hours, log_data)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, dailies[i].ID, tripID, dailies[i].Date, dailies[i].StartingOdometer, dailies[i].EndingOdometer,
			dailies[i].TotalDrivingHours, dailies[i].TotalOnDutyHours, dailies[i].TotalOffDutyHours,
			dailies[i].TotalSleeperBerthHours, gridJSON); err != nil {
			return nil, nil, err
		}
	}

	if s.hub != nil && len(dailies) > 0 {
		last := dailies[len(dailies)-1]
		payload, _ := json.Marshal(map[string]any{
			"trip_id":             tripID,
			"date":                last.Date.Format("2006-01-02"),
			"total_driving_hours": hos.Round2(last.TotalDrivingHours),
			"total_on_duty_hours": hos.Round2(last.TotalOnDutyHours),
		})
		s.hub.Broadcast(tripID, payload)
	}

	return entries, dailies, nil
}

func (s *Service) tripWaypoints(ctx context.Context, tripID string) ([]route.Waypoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT w.id, w.route_id, w.location_id, w.waypoint_type, w.sequence, w.estimated_arrival, w.planned_duration, COALESCE(w.notes,'')
		FROM waypoints w
		JOIN routes r ON r.id = w.route_id
		WHERE r.trip_id=$1
		ORDER BY w.sequence
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waypoints []route.Waypoint
	for rows.Next() {
		var w route.Waypoint
		if err := rows.Scan(&w.ID, &w.RouteID, &w.LocationID, &w.Type, &w.Sequence, &w.EstimatedArrival, &w.PlannedDurationHrs, &w.Notes); err != nil {
			return nil, err
		}
		waypoints = append(waypoints, w)
	}
	return waypoints, nil
}

func (s *Service) ListLogEntries(ctx context.Context, tripID string) ([]LogEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, start_time, end_time, status, COALESCE(location_id,''), COALESCE(activity,''), COALESCE(notes,'')
		FROM log_entries WHERE trip_id=$1
		ORDER BY start_time
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		var status string
		if err := rows.Scan(&e.ID, &e.TripID, &e.StartTime, &e.EndTime, &status, &e.LocationID, &e.Activity, &e.Notes); err != nil {
			return nil, err
		}
		e.Status = hos.ParseStatus(status)
		entries = append(entries, e)
	}
	return entries, nil
}

const dailyLogColumns = `id, trip_id, date, starting_odometer, ending_odometer,
		total_driving_hours, total_on_duty_hours, total_off_duty_hours, total_sleeper_berth_hours, log_data, created_at`

// ListDailyLogs returns the trip's sheets, optionally restricted to an
// inclusive date range.
func (s *Service) ListDailyLogs(ctx context.Context, tripID string, from, to time.Time) ([]DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE trip_id=$1 ORDER BY date`
	args := []any{tripID}
	if !from.IsZero() || !to.IsZero() {
		query = `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE trip_id=$1 AND date BETWEEN $2 AND $3 ORDER BY date`
		args = append(args, from, to)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (s *Service) GetDailyLog(ctx context.Context, logID string) (DailyLog, error) {
	row := s.db.QueryRow(ctx, `SELECT `+dailyLogColumns+` FROM daily_logs WHERE id=$1`, logID)
	return scanDailyLog(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDailyLog(row scanner) (DailyLog, error) {
	var l DailyLog
	var gridJSON []byte
	if err := row.Scan(&l.ID, &l.TripID, &l.Date, &l.StartingOdometer, &l.EndingOdometer,
		&l.TotalDrivingHours, &l.TotalOnDutyHours, &l.TotalOffDutyHours, &l.TotalSleeperBerthHours,
		&gridJSON, &l.CreatedAt); err != nil {
		return DailyLog{}, err
	}
	if len(gridJSON) > 0 {
		if err := json.Unmarshal(gridJSON, &l.Grid); err != nil {
			return DailyLog{}, err
		}
	}
	return l, nil
}

// Timeline renders one sheet as line coordinates for the log graph.
func (s *Service) Timeline(ctx context.Context, logID string, width, height float64) ([]hos.Line, error) {
	dailyLog, err := s.GetDailyLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	if dailyLog.Date.IsZero() {
		return nil, ErrMissingDate
	}
	segments := hos.BuildSegments(DutyEvents(dailyLog.Grid), hos.MinutesPerDay)
	return hos.MapTimeline(segments, hos.MinutesPerDay, width, height), nil
}

// CycleSummary totals the trailing 8-day window ending on the given date.
func (s *Service) CycleSummary(ctx context.Context, tripID string, endDate time.Time) (hos.CycleTotals, error) {
	rows, err := s.db.Query(ctx, `
		SELECT date, total_driving_hours, total_on_duty_hours
		FROM daily_logs WHERE trip_id=$1
		ORDER BY date
	`, tripID)
	if err != nil {
		return hos.CycleTotals{}, err
	}
	defer rows.Close()

	var days []hos.DayTotals
	for rows.Next() {
		var d hos.DayTotals
		if err := rows.Scan(&d.Date, &d.Driving, &d.OnDuty); err != nil {
			return hos.CycleTotals{}, err
		}
		if d.Date.IsZero() {
			return hos.CycleTotals{}, ErrMissingDate
		}
		days = append(days, d)
	}
	return hos.AggregateCycle(days, endDate), nil
}
