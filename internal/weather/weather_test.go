package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCurrentParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") != "51.5000" || q.Get("longitude") != "-0.1200" {
			t.Errorf("unexpected coordinates: %s,%s", q.Get("latitude"), q.Get("longitude"))
		}
		if q.Get("current_weather") != "true" {
			t.Error("expected current_weather=true")
		}
		w.Write([]byte(`{"current_weather":{"temperature":21.4,"windspeed":9.3,"weathercode":61,"is_day":1}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	current, err := client.Current(context.Background(), 51.5, -0.12, false)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}

	if current.Temperature != 21.4 {
		t.Errorf("unexpected temperature: %v", current.Temperature)
	}
	if current.Condition != "Rain" {
		t.Errorf("expected Rain, got %q", current.Condition)
	}
	if !current.IsDay {
		t.Error("expected daytime")
	}
	if current.Unit != "°C" {
		t.Errorf("expected celsius unit, got %q", current.Unit)
	}
}

func TestCurrentFahrenheitUnit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("temperature_unit") != "fahrenheit" {
			t.Error("expected temperature_unit=fahrenheit")
		}
		w.Write([]byte(`{"current_weather":{"temperature":70.5,"windspeed":5,"weathercode":0,"is_day":1}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	current, err := client.Current(context.Background(), 40, -74, true)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.Unit != "°F" {
		t.Errorf("expected fahrenheit unit, got %q", current.Unit)
	}
}

func TestCurrentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"reason":"invalid coordinates"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Current(context.Background(), 999, 999, false); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestConditionMapping(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{45, "Foggy"},
		{53, "Drizzle"},
		{65, "Rain"},
		{75, "Snow"},
		{81, "Rain showers"},
		{86, "Snow showers"},
		{95, "Thunderstorm"},
		{42, "Unknown"},
	}
	for _, tc := range cases {
		if got := Condition(tc.code); got != tc.want {
			t.Errorf("Condition(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/reverse-geocode-client" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("localityLanguage") != "en" {
			t.Error("expected localityLanguage=en")
		}
		w.Write([]byte(`{"city":"Lisbon","locality":"Santa Maria Maior","principalSubdivision":"Lisboa","countryName":"Portugal"}`))
	}))
	defer server.Close()

	geocoder := NewGeocoder(server.URL)
	label, err := geocoder.ReverseGeocode(context.Background(), 38.71, -9.14)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if label != "Lisbon, Portugal" {
		t.Errorf("unexpected label: %q", label)
	}
}

func TestReverseGeocodeFallsBackToLocality(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city":"","locality":"Smallville","countryName":"USA"}`))
	}))
	defer server.Close()

	geocoder := NewGeocoder(server.URL)
	label, err := geocoder.ReverseGeocode(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if label != "Smallville, USA" {
		t.Errorf("unexpected label: %q", label)
	}
}

func TestTipFor(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	rainTip := TipFor(63, now)
	if rainTip != conditionTips["Rain"] {
		t.Errorf("expected rain tip, got %q", rainTip)
	}

	// Unknown codes fall back to the daily tip.
	if got := TipFor(42, now); got != DailyTip(now) {
		t.Errorf("expected daily tip fallback, got %q", got)
	}
}

func TestDailyTipIsStablePerDay(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	morning := day.Add(8 * time.Hour)
	evening := day.Add(20 * time.Hour)

	if DailyTip(morning) != DailyTip(evening) {
		t.Error("tip changed within the same day")
	}
}
