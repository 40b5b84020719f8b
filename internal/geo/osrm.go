package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

// OSRMProvider is the keyless fallback: the public OSRM router over
// OpenStreetMap data.
type OSRMProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewOSRMProvider() *OSRMProvider {
	return &OSRMProvider{
		baseURL: "https://router.project-osrm.org/route/v1",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"` // meters
	Duration float64   `json:"duration"` // seconds
	Legs     []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Mode     string  `json:"mode"`
	Maneuver struct {
		Type     string `json:"type"`
		Modifier string `json:"modifier"`
	} `json:"maneuver"`
}

// osrmProfile maps the Google-style travel mode onto an OSRM profile.
// Transit has no OSRM equivalent and degrades to driving.
func osrmProfile(mode string) string {
	switch mode {
	case "walking":
		return "foot"
	case "bicycling":
		return "bike"
	default:
		return "driving"
	}
}

func (p *OSRMProvider) Directions(ctx context.Context, origin, destination models.Coordinates, mode string) (*models.DirectionsResult, error) {
	// OSRM wants lng,lat;lng,lat
	url := fmt.Sprintf("%s/%s/%.6f,%.6f;%.6f,%.6f?overview=false&alternatives=false&steps=true",
		p.baseURL, osrmProfile(mode),
		origin.Lng, origin.Lat,
		destination.Lng, destination.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OSRM API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OSRM API returned status %d", resp.StatusCode)
	}

	var osrmResp osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&osrmResp); err != nil {
		return nil, fmt.Errorf("failed to decode OSRM response: %w", err)
	}

	if osrmResp.Code != "Ok" || len(osrmResp.Routes) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	route := osrmResp.Routes[0]
	result := &models.DirectionsResult{
		Distance:           formatDistance(route.Distance),
		Duration:           formatDuration(route.Duration),
		OriginAddress:      origin.Placeholder(),
		DestinationAddress: destination.Placeholder(),
		Provider:           "osrm",
	}

	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			result.Steps = append(result.Steps, models.RouteStep{
				Instruction: osrmInstruction(step),
				Distance:    formatDistance(step.Distance),
				Duration:    formatDuration(step.Duration),
				TravelMode:  strings.ToUpper(mode),
			})
		}
	}

	return result, nil
}

func osrmInstruction(step osrmStep) string {
	verb := step.Maneuver.Type
	if step.Maneuver.Modifier != "" {
		verb = verb + " " + step.Maneuver.Modifier
	}
	if step.Name == "" {
		return capitalize(verb)
	}
	return capitalize(verb) + " onto " + step.Name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatDistance(meters float64) models.TextValue {
	text := fmt.Sprintf("%.0f m", meters)
	if meters >= 1000 {
		text = fmt.Sprintf("%.1f km", meters/1000)
	}
	return models.TextValue{Text: text, Value: int(meters)}
}

func formatDuration(seconds float64) models.TextValue {
	minutes := int(seconds) / 60
	if minutes < 1 {
		minutes = 1
	}
	text := fmt.Sprintf("%d mins", minutes)
	if minutes >= 60 {
		text = fmt.Sprintf("%d hours %d mins", minutes/60, minutes%60)
	}
	return models.TextValue{Text: text, Value: int(seconds)}
}
