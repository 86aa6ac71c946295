package trip

import (
	"context"
	"errors"
	"time"

	"backend-tripplanner/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateLocation(ctx context.Context, input Location) (Location, error) {
	input.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO locations (id, name, latitude, longitude, address)
		VALUES ($1,$2,$3,$4,$5)
	`, input.ID, input.Name, input.Lat, input.Lng, input.Address)
	if err != nil {
		return Location{}, err
	}
	return input, nil
}

func (s *Service) GetLocation(ctx context.Context, id string) (Location, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, latitude, longitude, COALESCE(address,'')
		FROM locations WHERE id=$1
	`, id)
	var loc Location
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lng, &loc.Address); err != nil {
		return Location{}, err
	}
	return loc, nil
}

func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM locations WHERE id=$1`, id)
	return err
}

func (s *Service) CreateTrip(ctx context.Context, input Trip) (Trip, error) {
	if input.Title == "" || input.UserID == "" {
		return Trip{}, errors.New("title and user_id required")
	}
	input.ID = uuid.NewString()
	if input.Status == "" {
		input.Status = StatusPlanned
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, user_id, title, current_location_id, pickup_location_id, dropoff_location_id,
		                   start_time, current_cycle_hours, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at
	`, input.ID, input.UserID, input.Title, input.CurrentLocationID, input.PickupLocationID, input.DropoffLocationID,
		input.StartTime, input.CurrentCycleHours, input.Status, input.Notes)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Trip{}, err
	}
	return input, nil
}

func (s *Service) GetTrip(ctx context.Context, id, userID string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, title, current_location_id, pickup_location_id, dropoff_location_id,
		       start_time, COALESCE(estimated_end_time, 'epoch'::timestamptz), current_cycle_hours,
		       status, COALESCE(notes,''), created_at, updated_at
		FROM trips WHERE id=$1 AND user_id=$2
	`, id, userID)
	var t Trip
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.CurrentLocationID, &t.PickupLocationID, &t.DropoffLocationID,
		&t.StartTime, &t.EstimatedEndTime, &t.CurrentCycleHours, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Trip{}, err
	}
	return t, nil
}

func (s *Service) ListTrips(ctx context.Context, userID string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, title, current_location_id, pickup_location_id, dropoff_location_id,
		       start_time, COALESCE(estimated_end_time, 'epoch'::timestamptz), current_cycle_hours,
		       status, COALESCE(notes,''), created_at, updated_at
		FROM trips WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.CurrentLocationID, &t.PickupLocationID, &t.DropoffLocationID,
			&t.StartTime, &t.EstimatedEndTime, &t.CurrentCycleHours, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (s *Service) UpdateTrip(ctx context.Context, id, userID string, patch Trip) (Trip, error) {
	t, err := s.GetTrip(ctx, id, userID)
	if err != nil {
		return Trip{}, err
	}
	if patch.Title != "" {
		t.Title = patch.Title
	}
	if patch.Status != "" {
		t.Status = patch.Status
	}
	if patch.Notes != "" {
		t.Notes = patch.Notes
	}
	if !patch.StartTime.IsZero() {
		t.StartTime = patch.StartTime
	}
	if !patch.EstimatedEndTime.IsZero() {
		t.EstimatedEndTime = patch.EstimatedEndTime
	}
	if patch.CurrentCycleHours != 0 {
		t.CurrentCycleHours = patch.CurrentCycleHours
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET title=$3, start_time=$4, estimated_end_time=$5, current_cycle_hours=$6, status=$7, notes=$8, updated_at=now()
		WHERE id=$1 AND user_id=$2
	`, t.ID, userID, t.Title, t.StartTime, timePtr(t.EstimatedEndTime), t.CurrentCycleHours, t.Status, t.Notes)
	if err != nil {
		return Trip{}, err
	}
	return t, nil
}

func (s *Service) DeleteTrip(ctx context.Context, id, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
