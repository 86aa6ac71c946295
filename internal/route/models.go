package route

import "time"

const (
	WaypointRest      = "rest"
	WaypointFuel      = "fuel"
	WaypointPickup    = "pickup"
	WaypointDropoff   = "dropoff"
	WaypointOvernight = "overnight"
)

type Route struct {
	ID              string     `json:"id"`
	TripID          string     `json:"trip_id"`
	TotalDistanceMi float64    `json:"total_distance"`
	DrivingTimeHrs  float64    `json:"estimated_driving_time"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Waypoints       []Waypoint `json:"waypoints,omitempty"`
}

type Waypoint struct {
	ID                 string    `json:"id"`
	RouteID            string    `json:"route_id"`
	LocationID         string    `json:"location_id"`
	Type               string    `json:"waypoint_type"`
	Sequence           int       `json:"sequence"`
	EstimatedArrival   time.Time `json:"estimated_arrival"`
	PlannedDurationHrs float64   `json:"planned_duration"`
	Notes              string    `json:"notes,omitempty"`
}

// Leg is one drivable stretch between consecutive stops of a calculated
// route, in the units the planner works in (miles, hours).
type Leg struct {
	Index       int     `json:"index"`
	DistanceMi  float64 `json:"distance"`
	DurationHrs float64 `json:"duration"`
	StartLat    float64 `json:"start_lat"`
	StartLng    float64 `json:"start_lng"`
	EndLat      float64 `json:"end_lat"`
	EndLng      float64 `json:"end_lng"`
}

// Directions is the normalized result of a directions request.
type Directions struct {
	TotalDistanceMi float64
	DrivingTimeHrs  float64
	Legs            []Leg
}

// Stop is a planned rest, fuel, or overnight stop along the route.
type Stop struct {
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Lat              float64   `json:"latitude"`
	Lng              float64   `json:"longitude"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
	DurationHrs      float64   `json:"duration"`
}

// Geocoded is a resolved street address.
type Geocoded struct {
	Lat     float64 `json:"latitude"`
	Lng     float64 `json:"longitude"`
	Address string  `json:"address"`
}
