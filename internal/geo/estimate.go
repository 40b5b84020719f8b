package geo

import (
	"fmt"
	"math"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

// avgSpeedKmh is the assumed city speed per travel mode, used only for the
// last-resort straight-line estimate.
func avgSpeedKmh(mode string) float64 {
	switch mode {
	case "walking":
		return 5
	case "bicycling":
		return 15
	case "transit":
		return 30
	default:
		return 50
	}
}

// estimateRoute synthesizes a DirectionsResult from the haversine distance
// when every provider has failed. It never errors, so the caller always has
// something to render alongside the external-maps deep link.
func estimateRoute(origin, destination models.Coordinates, mode string) *models.DirectionsResult {
	distanceKm := haversineKm(origin, destination)
	seconds := distanceKm / avgSpeedKmh(mode) * 3600

	return &models.DirectionsResult{
		Distance:           formatDistance(distanceKm * 1000),
		Duration:           formatDuration(seconds),
		OriginAddress:      origin.Placeholder(),
		DestinationAddress: destination.Placeholder(),
		Steps: []models.RouteStep{
			{
				Instruction: fmt.Sprintf("Head to destination (estimated %.1f km)", distanceKm),
				Distance:    formatDistance(distanceKm * 1000),
				Duration:    formatDuration(seconds),
				TravelMode:  mode,
			},
		},
		Provider: "estimate",
	}
}

func haversineKm(a, b models.Coordinates) float64 {
	const earthRadiusKm = 6371

	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
