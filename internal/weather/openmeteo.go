// Package weather looks up current conditions and plant-care tips for the
// sidebar card. It consumes two public REST APIs: Open-Meteo for weather
// and BigDataCloud for reverse geocoding.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const openMeteoBaseURL = "https://api.open-meteo.com"

// Client fetches current weather from Open-Meteo.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an Open-Meteo client. An empty baseURL uses the
// public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = openMeteoBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Current is the current weather at a location.
type Current struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	IsDay       bool    `json:"is_day"`
	Condition   string  `json:"condition"`
	Unit        string  `json:"unit"`
}

// currentWeatherResponse is the Open-Meteo response envelope.
type currentWeatherResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		IsDay       int     `json:"is_day"`
	} `json:"current_weather"`
}

// Current fetches the current weather for the given coordinates. Set
// fahrenheit for imperial temperature units.
func (c *Client) Current(ctx context.Context, latitude, longitude float64, fahrenheit bool) (*Current, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', 4, 64))
	query.Set("current_weather", "true")
	unit := "°C"
	if fahrenheit {
		query.Set("temperature_unit", "fahrenheit")
		unit = "°F"
	}

	endpoint := c.baseURL + "/v1/forecast?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return nil, fmt.Errorf("weather API error (%d): %s", resp.StatusCode, string(body))
	}

	var payload currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding weather response: %w", err)
	}

	cw := payload.CurrentWeather
	return &Current{
		Temperature: cw.Temperature,
		WindSpeed:   cw.WindSpeed,
		WeatherCode: cw.WeatherCode,
		IsDay:       cw.IsDay == 1,
		Condition:   Condition(cw.WeatherCode),
		Unit:        unit,
	}, nil
}

// Condition maps a WMO weather code to a short human label.
func Condition(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Foggy"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
