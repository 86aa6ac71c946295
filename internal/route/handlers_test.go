package route

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestRouteHandlerCalculate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2025, time.March, 10, 6, 0, 0, 0, time.UTC)
	now := time.Now()

	expectTripLookup(mock, start)
	mock.ExpectQuery(`INSERT INTO routes`).
		WithArgs(pgxmock.AnyArg(), "trip-1", 300.0, 6.0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("route-1", now, now))
	mock.ExpectExec(`DELETE FROM waypoints`).
		WithArgs("route-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO waypoints`).
		WithArgs(pgxmock.AnyArg(), "route-1", "loc-p", WaypointPickup, 0, start, pickupDropoffHrs).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO waypoints`).
		WithArgs(pgxmock.AnyArg(), "route-1", "loc-d", WaypointDropoff, 1, pgxmock.AnyArg(), pickupDropoffHrs).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE trips SET estimated_end_time`).
		WithArgs("trip-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`SELECT id, route_id, location_id, waypoint_type`).
		WithArgs("route-1").
		WillReturnRows(waypointRows().
			AddRow("wp-1", "route-1", "loc-p", WaypointPickup, 0, start, pickupDropoffHrs, "").
			AddRow("wp-2", "route-1", "loc-d", WaypointDropoff, 1, start.Add(7*time.Hour), pickupDropoffHrs, ""))

	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), NewService(mock, &fakeMaps{directions: shortDirections()}), authAs("user-1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/routes/trip-1/calculate", nil))
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("calculate status: %v %d", err, resp.StatusCode)
	}

	var route Route
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		t.Fatalf("decode route: %v", err)
	}
	if route.TotalDistanceMi != 300 || len(route.Waypoints) != 2 {
		t.Fatalf("unexpected route body %+v", route)
	}
}

func TestRouteHandlerNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, trip_id, total_distance, estimated_driving_time`).
		WithArgs("trip-9").
		WillReturnError(pgx.ErrNoRows)

	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), NewService(mock, &fakeMaps{}), authAs("user-1"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/routes/trip-9", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v %d", err, resp.StatusCode)
	}
}

func TestGeocodeHandler(t *testing.T) {
	app := fiber.New()
	maps := &fakeMaps{geocoded: Geocoded{Lat: 41.8781, Lng: -87.6298, Address: "Chicago, Illinois, United States"}}
	RegisterGeocodeRoutes(app.Group("/geocode"), NewService(nil, maps), authAs("user-1"))

	body, _ := json.Marshal(map[string]string{"address": "Chicago, IL"})
	req := httptest.NewRequest(http.MethodPost, "/geocode/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("geocode status: %v", err)
	}

	var loc Geocoded
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		t.Fatalf("decode geocoded: %v", err)
	}
	if loc.Lat != 41.8781 {
		t.Fatalf("unexpected latitude %f", loc.Lat)
	}
}

func TestGeocodeHandlerMissingAddress(t *testing.T) {
	app := fiber.New()
	RegisterGeocodeRoutes(app.Group("/geocode"), NewService(nil, &fakeMaps{}), authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/geocode/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
