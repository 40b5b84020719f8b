package geo

import (
	"context"
	"log"
	"os"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type DirectionsProvider interface {
	Directions(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.DirectionsResult, error)
}

type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error)
}

// GeoService resolves routes and addresses with a primary/fallback provider
// pair. Both paths failing degrades to a synthesized result instead of an
// error, so the caller's workflow never blocks on a maps outage.
type GeoService struct {
	primary          DirectionsProvider
	fallback         DirectionsProvider
	primaryGeocoder  ReverseGeocoder
	fallbackGeocoder ReverseGeocoder
}

func NewGeoService() *GeoService {
	google := NewGoogleProvider(os.Getenv("GOOGLE_MAPS_API_KEY"))
	return &GeoService{
		primary:          google,
		fallback:         NewOSRMProvider(),
		primaryGeocoder:  google,
		fallbackGeocoder: NewNominatimProvider(),
	}
}

func NewGeoServiceWith(primary, fallback DirectionsProvider, primaryGeocoder, fallbackGeocoder ReverseGeocoder) *GeoService {
	return &GeoService{
		primary:          primary,
		fallback:         fallback,
		primaryGeocoder:  primaryGeocoder,
		fallbackGeocoder: fallbackGeocoder,
	}
}

var validModes = map[string]bool{
	"driving":   true,
	"walking":   true,
	"bicycling": true,
	"transit":   true,
}

func IsValidMode(mode string) bool {
	return validModes[mode]
}

func (s *GeoService) GetDirections(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.DirectionsResult, error) {
	result, err := withFallback(ctx, "directions",
		func(ctx context.Context) (*models.DirectionsResult, error) {
			return s.primary.Directions(ctx, origin, destination, mode)
		},
		func(ctx context.Context) (*models.DirectionsResult, error) {
			return s.fallback.Directions(ctx, origin, destination, mode)
		},
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("geo: all directions providers failed, serving estimate: %v", err)
		degradedResults.WithLabelValues("directions").Inc()
		result = estimateRoute(origin, destination, mode)
	}

	return result, nil
}

// ResolveAddress never fails: both geocoders down yields the raw-coordinate
// placeholder string.
func (s *GeoService) ResolveAddress(ctx context.Context, point models.Coordinates) string {
	address, err := withFallback(ctx, "reverse-geocode",
		func(ctx context.Context) (string, error) {
			return s.primaryGeocoder.ReverseGeocode(ctx, point)
		},
		func(ctx context.Context) (string, error) {
			return s.fallbackGeocoder.ReverseGeocode(ctx, point)
		},
	)
	if err != nil {
		degradedResults.WithLabelValues("reverse-geocode").Inc()
		return point.Placeholder()
	}

	return address
}
