package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LEAFDOCTOR_*). An empty path means
// the default location (~/.leafdoctor.yml).
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		path = p
	}

	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: LEAFDOCTOR_SERVER_URL -> server_url, etc.
	if err := k.Load(env.Provider("LEAFDOCTOR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LEAFDOCTOR_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validUnits is the set of recognized temperature units.
var validUnits = map[Units]bool{
	UnitsCelsius:    true,
	UnitsFahrenheit: true,
}

// validAssistants is the set of recognized assistant providers.
var validAssistants = map[AssistantProvider]bool{
	AssistantBackend: true,
	AssistantOpenAI:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server_url %q: must be an absolute http(s) URL", c.ServerURL)
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}

	if c.TopK < 1 || c.TopK > 10 {
		return fmt.Errorf("top_k must be between 1 and 10")
	}

	if c.Units != "" && !validUnits[c.Units] {
		return fmt.Errorf("invalid units %q: must be celsius or fahrenheit", c.Units)
	}

	if c.Assistant.Provider != "" && !validAssistants[c.Assistant.Provider] {
		return fmt.Errorf("invalid assistant provider %q: must be backend or openai", c.Assistant.Provider)
	}
	if c.Assistant.Provider == AssistantOpenAI && c.Assistant.Model == "" {
		return fmt.Errorf("assistant model is required when provider is openai")
	}

	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location latitude must be between -90 and 90")
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location longitude must be between -180 and 180")
	}

	return nil
}
