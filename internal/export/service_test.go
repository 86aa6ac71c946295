package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-tripplanner/internal/hos"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

var errSave = errors.New("save error")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func dayRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"date", "total_driving_hours", "total_on_duty_hours",
		"total_off_duty_hours", "total_sleeper_berth_hours", "starting_odometer", "ending_odometer"})
}

func TestBuildReport(t *testing.T) {
	mock := newMock(t)
	day1 := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	mock.ExpectQuery(`SELECT title FROM trips`).
		WithArgs("trip-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"title"}).AddRow("Chicago run"))
	mock.ExpectQuery(`SELECT date, total_driving_hours`).
		WithArgs("trip-1").
		WillReturnRows(dayRows().
			AddRow(day1, 13.0, 2.0, 0.5, 4.0, 0, 715).
			AddRow(day2, 4.0, 1.0, 0.0, 6.0, 715, 935))
	mock.ExpectExec(`INSERT INTO export_artifacts`).
		WithArgs(pgxmock.AnyArg(), "trip-1", "user-1", "hos_report", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock)
	report, artifactID, err := svc.BuildReport(context.Background(), "trip-1", "user-1")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if artifactID == "" {
		t.Fatalf("expected artifact id")
	}
	if report.Title != "Chicago run" || len(report.Days) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Days[0].Odometer != 715 || report.Days[1].Date != "2025-03-11" {
		t.Fatalf("unexpected day summaries %+v", report.Days)
	}
	if report.Days[0].Miles != 715 || report.Days[1].Miles != 220 {
		t.Fatalf("unexpected mileage %+v", report.Days)
	}
	// Both days fall inside the trailing window ending on the last day.
	if report.Cycle.Driving != 17 || report.Cycle.OnDuty != 20 {
		t.Fatalf("unexpected cycle totals %+v", report.Cycle)
	}
	if report.Legend[hos.Driving] != hos.Driving.Color() {
		t.Fatalf("legend should carry the timeline colors")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuildReportOdometerOutOfOrder(t *testing.T) {
	mock := newMock(t)
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT title FROM trips`).
		WithArgs("trip-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"title"}).AddRow("Chicago run"))
	mock.ExpectQuery(`SELECT date, total_driving_hours`).
		WithArgs("trip-1").
		WillReturnRows(dayRows().AddRow(day, 6.0, 2.0, 0.0, 0.0, 500, 120))
	mock.ExpectExec(`INSERT INTO export_artifacts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock)
	report, _, err := svc.BuildReport(context.Background(), "trip-1", "user-1")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	// Ending reading below the starting one means no usable distance.
	if report.Days[0].Miles != 0 {
		t.Fatalf("unexpected mileage %+v", report.Days)
	}
}

func TestBuildReportTripNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT title FROM trips`).
		WithArgs("missing", "user-1").
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock)
	if _, _, err := svc.BuildReport(context.Background(), "missing", "user-1"); err != pgx.ErrNoRows {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestBuildReportSaveError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT title FROM trips`).
		WithArgs("trip-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"title"}).AddRow("Chicago run"))
	mock.ExpectQuery(`SELECT date, total_driving_hours`).
		WithArgs("trip-1").
		WillReturnRows(dayRows())
	mock.ExpectExec(`INSERT INTO export_artifacts`).
		WillReturnError(errSave)

	svc := NewService(mock)
	if _, _, err := svc.BuildReport(context.Background(), "trip-1", "user-1"); err == nil {
		t.Fatalf("expected save error")
	}
}

func TestGetArtifact(t *testing.T) {
	mock := newMock(t)
	payload := []byte(`{"trip_id":"trip-1","title":"Chicago run","days":[],"cycle":{"driving":0,"on_duty":0}}`)

	mock.ExpectQuery(`SELECT payload FROM export_artifacts`).
		WithArgs("artifact-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	svc := NewService(mock)
	report, err := svc.GetArtifact(context.Background(), "artifact-1", "user-1")
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	if report.TripID != "trip-1" {
		t.Fatalf("unexpected report %+v", report)
	}
}
