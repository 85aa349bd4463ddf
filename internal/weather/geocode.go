package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const bigDataCloudBaseURL = "https://api.bigdatacloud.net"

// Geocoder resolves coordinates to a place name via BigDataCloud's free
// reverse-geocoding endpoint (no API key required).
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocoder creates a reverse geocoder. An empty baseURL uses the
// public API.
func NewGeocoder(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = bigDataCloudBaseURL
	}
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// reverseGeocodeResponse is the subset of BigDataCloud's response we use.
type reverseGeocodeResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// ReverseGeocode returns a display label like "Lisbon, Portugal" for the
// given coordinates.
func (g *Geocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', 4, 64))
	query.Set("localityLanguage", "en")

	endpoint := g.baseURL + "/data/reverse-geocode-client?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocoding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return "", fmt.Errorf("geocoding API error (%d): %s", resp.StatusCode, string(body))
	}

	var payload reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding geocode response: %w", err)
	}

	place := payload.City
	if place == "" {
		place = payload.Locality
	}
	if place == "" {
		place = payload.PrincipalSubdivision
	}

	parts := []string{}
	if place != "" {
		parts = append(parts, place)
	}
	if payload.CountryName != "" {
		parts = append(parts, payload.CountryName)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no place found for %.4f,%.4f", latitude, longitude)
	}
	return strings.Join(parts, ", "), nil
}
