package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/config"
	"github.com/leafdoctor/leafdoctor/internal/weather"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show current weather and a plant-care tip",
	Long:  `Shows the current weather for your configured location (or explicit coordinates) with a matching plant-care tip.`,
	RunE:  runWeather,
}

func init() {
	weatherCmd.Flags().Float64("lat", 0, "latitude (overrides config)")
	weatherCmd.Flags().Float64("lon", 0, "longitude (overrides config)")
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lat := cfg.Location.Latitude
	lon := cfg.Location.Longitude
	if cmd.Flags().Changed("lat") {
		lat, _ = cmd.Flags().GetFloat64("lat")
	}
	if cmd.Flags().Changed("lon") {
		lon, _ = cmd.Flags().GetFloat64("lon")
	}
	if lat == 0 && lon == 0 {
		return fmt.Errorf("no location configured; pass --lat/--lon or run `leafdoctor init`")
	}

	ctx := context.Background()
	wc := weather.NewClient("")

	current, err := wc.Current(ctx, lat, lon, cfg.Units == config.UnitsFahrenheit)
	if err != nil {
		return fmt.Errorf("fetching weather: %w", err)
	}

	location := cfg.Location.Label
	if location == "" {
		if name, err := weather.NewGeocoder("").ReverseGeocode(ctx, lat, lon); err == nil {
			location = name
		}
	}

	if location != "" {
		fmt.Printf("Weather for %s:\n", location)
	}
	fmt.Printf("  %s, %.1f%s, wind %.1f km/h\n", current.Condition, current.Temperature, current.Unit, current.WindSpeed)
	fmt.Printf("\nTip: %s\n", weather.TipFor(current.WeatherCode, time.Now()))
	return nil
}
