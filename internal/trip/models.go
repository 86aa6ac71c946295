package trip

import "time"

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Location struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"latitude"`
	Lng     float64 `json:"longitude"`
	Address string  `json:"address"`
}

type Trip struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Title             string    `json:"title"`
	CurrentLocationID string    `json:"current_location"`
	PickupLocationID  string    `json:"pickup_location"`
	DropoffLocationID string    `json:"dropoff_location"`
	StartTime         time.Time `json:"start_time"`
	EstimatedEndTime  time.Time `json:"estimated_end_time,omitempty"`
	CurrentCycleHours float64   `json:"current_cycle_hours"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
