package models

import "fmt"

// DefaultCoordinates keeps the request-creation flow unblocked when
// the caller's location cannot be resolved (central New Delhi).
var DefaultCoordinates = Coordinates{Lat: 28.6139, Lng: 77.2090}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Placeholder is the degraded-mode address when reverse geocoding fails.
func (c Coordinates) Placeholder() string {
	return fmt.Sprintf("Location (%.4f, %.4f)", c.Lat, c.Lng)
}
