package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

const (
	googleDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"
	googleGeocodeURL    = "https://maps.googleapis.com/maps/api/geocode/json"
)

// GoogleProvider talks to the Google Maps Directions and Geocoding APIs.
// The key stays server-side; clients never call Google directly.
type GoogleProvider struct {
	directionsURL string
	geocodeURL    string
	key           string
	httpClient    *http.Client
}

func NewGoogleProvider(key string) *GoogleProvider {
	return &GoogleProvider{
		directionsURL: googleDirectionsURL,
		geocodeURL:    googleGeocodeURL,
		key:           key,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type googleDirectionsResponse struct {
	Status string        `json:"status"`
	Routes []googleRoute `json:"routes"`
}

type googleRoute struct {
	Legs []googleLeg `json:"legs"`
}

type googleLeg struct {
	Distance     googleTextValue `json:"distance"`
	Duration     googleTextValue `json:"duration"`
	StartAddress string          `json:"start_address"`
	EndAddress   string          `json:"end_address"`
	Steps        []googleStep    `json:"steps"`
}

type googleTextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type googleStep struct {
	HTMLInstructions string          `json:"html_instructions"`
	Distance         googleTextValue `json:"distance"`
	Duration         googleTextValue `json:"duration"`
	TravelMode       string          `json:"travel_mode"`
}

func (p *GoogleProvider) Directions(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.DirectionsResult, error) {
	if p.key == "" {
		return nil, fmt.Errorf("maps API key not configured")
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	params.Set("mode", mode)
	params.Set("key", p.key)

	var response googleDirectionsResponse
	if err := p.getJSON(ctx, p.directionsURL+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	if response.Status != "OK" || len(response.Routes) == 0 || len(response.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("no route found (status %s)", response.Status)
	}

	leg := response.Routes[0].Legs[0]
	result := &models.DirectionsResult{
		Distance:           models.TextValue{Text: leg.Distance.Text, Value: leg.Distance.Value},
		Duration:           models.TextValue{Text: leg.Duration.Text, Value: leg.Duration.Value},
		OriginAddress:      leg.StartAddress,
		DestinationAddress: leg.EndAddress,
		Provider:           "google",
	}

	for _, step := range leg.Steps {
		result.Steps = append(result.Steps, models.RouteStep{
			Instruction: step.HTMLInstructions,
			Distance:    models.TextValue{Text: step.Distance.Text, Value: step.Distance.Value},
			Duration:    models.TextValue{Text: step.Duration.Text, Value: step.Duration.Value},
			TravelMode:  step.TravelMode,
		})
	}

	return result, nil
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

func (p *GoogleProvider) ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error) {
	if p.key == "" {
		return "", fmt.Errorf("maps API key not configured")
	}

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", point.Lat, point.Lng))
	params.Set("key", p.key)

	var response googleGeocodeResponse
	if err := p.getJSON(ctx, p.geocodeURL+"?"+params.Encode(), &response); err != nil {
		return "", err
	}

	if response.Status != "OK" || len(response.Results) == 0 {
		return "", fmt.Errorf("no address found (status %s)", response.Status)
	}

	return response.Results[0].FormattedAddress, nil
}

func (p *GoogleProvider) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call maps API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode maps API response: %w", err)
	}

	return nil
}
