package export

import (
	"context"
	"encoding/json"
	"time"

	"backend-tripplanner/internal/db"
	"backend-tripplanner/internal/eld"
	"backend-tripplanner/internal/hos"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// DayReport is one daily log summarized for the printable report. The hour
// totals are rounded the same way the on-screen summary rounds them.
type DayReport struct {
	Date         string  `json:"date"`
	Driving      float64 `json:"driving"`
	OnDuty       float64 `json:"on_duty"`
	OffDuty      float64 `json:"off_duty"`
	SleeperBerth float64 `json:"sleeper_berth"`
	Odometer     int     `json:"odometer"`
	Miles        int     `json:"miles"`
}

type Report struct {
	TripID      string                    `json:"trip_id"`
	Title       string                    `json:"title"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Days        []DayReport               `json:"days"`
	Cycle       hos.CycleTotals           `json:"cycle"`
	Legend      map[hos.DutyStatus]string `json:"legend"`
}

// BuildReport assembles the trip's daily logs into a report and records an
// export artifact for it. The cycle totals cover the trailing window ending
// on the trip's last logged day.
func (s *Service) BuildReport(ctx context.Context, tripID, userID string) (Report, string, error) {
	var title string
	row := s.db.QueryRow(ctx, `SELECT title FROM trips WHERE id=$1 AND user_id=$2`, tripID, userID)
	if err := row.Scan(&title); err != nil {
		return Report{}, "", err
	}

	rows, err := s.db.Query(ctx, `
		SELECT date, total_driving_hours, total_on_duty_hours, total_off_duty_hours, total_sleeper_berth_hours,
		       starting_odometer, ending_odometer
		FROM daily_logs WHERE trip_id=$1
		ORDER BY date
	`, tripID)
	if err != nil {
		return Report{}, "", err
	}
	defer rows.Close()

	report := Report{
		TripID:      tripID,
		Title:       title,
		GeneratedAt: time.Now().UTC(),
		Legend:      statusLegend(),
	}

	var days []hos.DayTotals
	for rows.Next() {
		var day eld.DailyLog
		if err := rows.Scan(&day.Date, &day.TotalDrivingHours, &day.TotalOnDutyHours,
			&day.TotalOffDutyHours, &day.TotalSleeperBerthHours,
			&day.StartingOdometer, &day.EndingOdometer); err != nil {
			return Report{}, "", err
		}
		miles, _ := day.TotalMiles()
		report.Days = append(report.Days, DayReport{
			Date:         day.Date.Format("2006-01-02"),
			Driving:      hos.Round2(day.TotalDrivingHours),
			OnDuty:       hos.Round2(day.TotalOnDutyHours),
			OffDuty:      hos.Round2(day.TotalOffDutyHours),
			SleeperBerth: hos.Round2(day.TotalSleeperBerthHours),
			Odometer:     day.EndingOdometer,
			Miles:        miles,
		})
		days = append(days, hos.DayTotals{Date: day.Date, Driving: day.TotalDrivingHours, OnDuty: day.TotalOnDutyHours})
	}

	if len(days) > 0 {
		totals := hos.AggregateCycle(days, days[len(days)-1].Date)
		report.Cycle = hos.CycleTotals{
			Driving: hos.Round2(totals.Driving),
			OnDuty:  hos.Round2(totals.OnDuty),
		}
	}

	artifactID, err := s.saveArtifact(ctx, tripID, userID, report)
	if err != nil {
		return Report{}, "", err
	}
	return report, artifactID, nil
}

func (s *Service) saveArtifact(ctx context.Context, tripID, userID string, report Report) (string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO export_artifacts (id, trip_id, user_id, kind, payload)
		VALUES ($1,$2,$3,$4,$5)
	`, id, tripID, userID, "hos_report", payload)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) GetArtifact(ctx context.Context, artifactID, userID string) (Report, error) {
	var payload []byte
	row := s.db.QueryRow(ctx, `
		SELECT payload FROM export_artifacts WHERE id=$1 AND user_id=$2
	`, artifactID, userID)
	if err := row.Scan(&payload); err != nil {
		return Report{}, err
	}
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return Report{}, err
	}
	return report, nil
}

// statusLegend mirrors the timeline colors so exports match the screen.
func statusLegend() map[hos.DutyStatus]string {
	legend := map[hos.DutyStatus]string{}
	for _, status := range []hos.DutyStatus{hos.OffDuty, hos.SleeperBerth, hos.Driving, hos.OnDutyNotDriving} {
		legend[status] = status.Color()
	}
	return legend
}
