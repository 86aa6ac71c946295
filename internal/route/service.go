package route

import (
	"context"
	"time"

	"backend-tripplanner/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db   db.Querier
	maps Maps
}

func NewService(db db.Querier, maps Maps) *Service {
	return &Service{db: db, maps: maps}
}

type tripInfo struct {
	startTime  time.Time
	cycleHours float64
	currentLat float64
	currentLng float64
	pickupID   string
	pickupLat  float64
	pickupLng  float64
	dropoffID  string
	dropoffLat float64
	dropoffLng float64
}

// Calculate requests directions for the trip, plans the HOS stops, rebuilds
// the route's waypoints, and pushes the trip's estimated end time forward.
func (s *Service) Calculate(ctx context.Context, tripID, userID string) (Route, error) {
	info, err := s.loadTrip(ctx, tripID, userID)
	if err != nil {
		return Route{}, err
	}

	directions, err := s.maps.Directions(ctx, [][2]float64{
		{info.currentLat, info.currentLng},
		{info.pickupLat, info.pickupLng},
		{info.dropoffLat, info.dropoffLng},
	})
	if err != nil {
		return Route{}, err
	}

	route, err := s.upsertRoute(ctx, tripID, directions)
	if err != nil {
		return Route{}, err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM waypoints WHERE route_id=$1`, route.ID); err != nil {
		return Route{}, err
	}

	stops := PlanRestStops(directions, info.cycleHours, info.startTime)

	sequence := 0
	if err := s.insertWaypoint(ctx, Waypoint{
		RouteID:            route.ID,
		LocationID:         info.pickupID,
		Type:               WaypointPickup,
		Sequence:           sequence,
		EstimatedArrival:   info.startTime,
		PlannedDurationHrs: pickupDropoffHrs,
	}); err != nil {
		return Route{}, err
	}
	sequence++

	for _, stop := range stops {
		locID := uuid.NewString()
		if _, err := s.db.Exec(ctx, `
			INSERT INTO locations (id, name, latitude, longitude, address)
			VALUES ($1,$2,$3,$4,'')
		`, locID, stop.Name, stop.Lat, stop.Lng); err != nil {
			return Route{}, err
		}
		if err := s.insertWaypoint(ctx, Waypoint{
			RouteID:            route.ID,
			LocationID:         locID,
			Type:               stop.Type,
			Sequence:           sequence,
			EstimatedArrival:   stop.EstimatedArrival,
			PlannedDurationHrs: stop.DurationHrs,
		}); err != nil {
			return Route{}, err
		}
		sequence++
	}

	finalETA := dropoffETA(directions, stops, info.startTime)
	if err := s.insertWaypoint(ctx, Waypoint{
		RouteID:            route.ID,
		LocationID:         info.dropoffID,
		Type:               WaypointDropoff,
		Sequence:           sequence,
		EstimatedArrival:   finalETA,
		PlannedDurationHrs: pickupDropoffHrs,
	}); err != nil {
		return Route{}, err
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE trips SET estimated_end_time=$2, updated_at=now() WHERE id=$1
	`, tripID, finalETA.Add(hoursDur(pickupDropoffHrs))); err != nil {
		return Route{}, err
	}

	route.Waypoints, err = s.Waypoints(ctx, route.ID)
	if err != nil {
		return Route{}, err
	}
	return route, nil
}

// dropoffETA extends the last planned arrival by the remaining driving leg.
func dropoffETA(d Directions, stops []Stop, start time.Time) time.Time {
	lastArrival := start.Add(hoursDur(pickupDropoffHrs))
	lastDuration := 0.0
	if len(stops) > 0 {
		lastArrival = stops[len(stops)-1].EstimatedArrival
		lastDuration = stops[len(stops)-1].DurationHrs
	}
	finalLeg := 0.0
	if len(d.Legs) > 0 {
		finalLeg = d.Legs[len(d.Legs)-1].DurationHrs
	}
	return lastArrival.Add(hoursDur(lastDuration + finalLeg))
}

func (s *Service) GetByTrip(ctx context.Context, tripID string) (Route, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, trip_id, total_distance, estimated_driving_time, created_at, updated_at
		FROM routes WHERE trip_id=$1
	`, tripID)
	var r Route
	if err := row.Scan(&r.ID, &r.TripID, &r.TotalDistanceMi, &r.DrivingTimeHrs, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return Route{}, err
	}
	var err error
	r.Waypoints, err = s.Waypoints(ctx, r.ID)
	if err != nil {
		return Route{}, err
	}
	return r, nil
}

func (s *Service) Waypoints(ctx context.Context, routeID string) ([]Waypoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, route_id, location_id, waypoint_type, sequence, estimated_arrival, planned_duration, COALESCE(notes,'')
		FROM waypoints WHERE route_id=$1
		ORDER BY sequence
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waypoints []Waypoint
	for rows.Next() {
		var w Waypoint
		if err := rows.Scan(&w.ID, &w.RouteID, &w.LocationID, &w.Type, &w.Sequence, &w.EstimatedArrival, &w.PlannedDurationHrs, &w.Notes); err != nil {
			return nil, err
		}
		waypoints = append(waypoints, w)
	}
	return waypoints, nil
}

func (s *Service) loadTrip(ctx context.Context, tripID, userID string) (tripInfo, error) {
	row := s.db.QueryRow(ctx, `
		SELECT t.start_time, t.current_cycle_hours,
		       cl.latitude, cl.longitude,
		       pl.id, pl.latitude, pl.longitude,
		       dl.id, dl.latitude, dl.longitude
		FROM trips t
		JOIN locations cl ON cl.id = t.current_location_id
		JOIN locations pl ON pl.id = t.pickup_location_id
		JOIN locations dl ON dl.id = t.dropoff_location_id
		WHERE t.id=$1 AND t.user_id=$2
	`, tripID, userID)

	var info tripInfo
	if err := row.Scan(&info.startTime, &info.cycleHours,
		&info.currentLat, &info.currentLng,
		&info.pickupID, &info.pickupLat, &info.pickupLng,
		&info.dropoffID, &info.dropoffLat, &info.dropoffLng); err != nil {
		return tripInfo{}, err
	}
	return info, nil
}

func (s *Service) upsertRoute(ctx context.Context, tripID string, d Directions) (Route, error) {
	route := Route{
		ID:              uuid.NewString(),
		TripID:          tripID,
		TotalDistanceMi: d.TotalDistanceMi,
		DrivingTimeHrs:  d.DrivingTimeHrs,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, trip_id, total_distance, estimated_driving_time)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (trip_id) DO UPDATE
		SET total_distance=EXCLUDED.total_distance,
		    estimated_driving_time=EXCLUDED.estimated_driving_time,
		    updated_at=now()
		RETURNING id, created_at, updated_at
	`, route.ID, route.TripID, route.TotalDistanceMi, route.DrivingTimeHrs)
	if err := row.Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt); err != nil {
		return Route{}, err
	}
	return route, nil
}

func (s *Service) insertWaypoint(ctx context.Context, w Waypoint) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO waypoints (id, route_id, location_id, waypoint_type, sequence, estimated_arrival, planned_duration)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, uuid.NewString(), w.RouteID, w.LocationID, w.Type, w.Sequence, w.EstimatedArrival, w.PlannedDurationHrs)
	return err
}
