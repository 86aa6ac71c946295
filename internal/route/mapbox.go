package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	metersPerMile  = 1609.34
	secondsPerHour = 3600
)

// Maps is the directions/geocoding dependency of the route service.
type Maps interface {
	Directions(ctx context.Context, coords [][2]float64) (Directions, error)
	Geocode(ctx context.Context, address string) (Geocoded, error)
}

// MapboxClient talks to the Mapbox Directions and Geocoding APIs.
type MapboxClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewMapboxClient(apiKey string) *MapboxClient {
	return &MapboxClient{
		apiKey:  apiKey,
		baseURL: "https://api.mapbox.com",
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type directionsResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions requests a driving route through the given (lat, lng) points and
// converts the response into miles and hours.
func (c *MapboxClient) Directions(ctx context.Context, coords [][2]float64) (Directions, error) {
	if len(coords) < 2 {
		return Directions{}, errors.New("at least two coordinates required")
	}

	// Mapbox wants lng,lat pairs.
	points := make([]string, len(coords))
	for i, p := range coords {
		points[i] = fmt.Sprintf("%f,%f", p[1], p[0])
	}

	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s", c.baseURL, strings.Join(points, ";"))
	q := url.Values{}
	q.Set("access_token", c.apiKey)
	q.Set("geometries", "geojson")
	q.Set("overview", "full")
	q.Set("steps", "true")

	var parsed directionsResponse
	if err := c.getJSON(ctx, endpoint+"?"+q.Encode(), &parsed); err != nil {
		return Directions{}, err
	}
	if len(parsed.Routes) == 0 {
		return Directions{}, errors.New("no routes found in mapbox response")
	}

	r := parsed.Routes[0]
	out := Directions{
		TotalDistanceMi: r.Distance / metersPerMile,
		DrivingTimeHrs:  r.Duration / secondsPerHour,
	}
	for i, leg := range r.Legs {
		l := Leg{
			Index:       i,
			DistanceMi:  leg.Distance / metersPerMile,
			DurationHrs: leg.Duration / secondsPerHour,
		}
		if i+1 < len(r.Geometry.Coordinates) {
			start := r.Geometry.Coordinates[i]
			end := r.Geometry.Coordinates[i+1]
			l.StartLng, l.StartLat = start[0], start[1]
			l.EndLng, l.EndLat = end[0], end[1]
		}
		out.Legs = append(out.Legs, l)
	}
	return out, nil
}

type geocodeResponse struct {
	Features []struct {
		Center    []float64 `json:"center"`
		PlaceName string    `json:"place_name"`
	} `json:"features"`
}

// Geocode resolves a street address to coordinates.
func (c *MapboxClient) Geocode(ctx context.Context, address string) (Geocoded, error) {
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s",
		c.baseURL, url.PathEscape(address), url.QueryEscape(c.apiKey))

	var parsed geocodeResponse
	if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
		return Geocoded{}, err
	}
	if len(parsed.Features) == 0 {
		return Geocoded{}, errors.New("location not found")
	}

	f := parsed.Features[0]
	if len(f.Center) < 2 {
		return Geocoded{}, errors.New("malformed geocoding response")
	}
	return Geocoded{Lat: f.Center[1], Lng: f.Center[0], Address: f.PlaceName}, nil
}

func (c *MapboxClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mapbox api error: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
