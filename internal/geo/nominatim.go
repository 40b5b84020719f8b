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

// NominatimProvider is the keyless reverse-geocoding fallback.
type NominatimProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimProvider() *NominatimProvider {
	return &NominatimProvider{
		baseURL: "https://nominatim.openstreetmap.org/reverse",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

func (p *NominatimProvider) ReverseGeocode(ctx context.Context, point models.Coordinates) (string, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", point.Lat))
	params.Set("lon", fmt.Sprintf("%f", point.Lng))
	params.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim usage policy requires an identifying agent
	req.Header.Set("User-Agent", "blood-hero-backend")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Nominatim API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Nominatim API returned status %d", resp.StatusCode)
	}

	var nomResp nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nomResp); err != nil {
		return "", fmt.Errorf("failed to decode Nominatim response: %w", err)
	}

	if nomResp.Error != "" || nomResp.DisplayName == "" {
		return "", fmt.Errorf("no address found")
	}

	return nomResp.DisplayName, nil
}
