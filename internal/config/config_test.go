package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("unexpected default server_url: %q", cfg.ServerURL)
	}
	if cfg.TopK != 3 {
		t.Errorf("expected top_k 3, got %d", cfg.TopK)
	}
	if cfg.Assistant.Provider != AssistantBackend {
		t.Errorf("expected backend assistant, got %q", cfg.Assistant.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leafdoctor.yml")
	content := `server_url: https://api.leafdoctor.example
timeout_seconds: 30
top_k: 5
units: fahrenheit
location:
  latitude: 51.5
  longitude: -0.12
  label: London
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerURL != "https://api.leafdoctor.example" {
		t.Errorf("unexpected server_url: %q", cfg.ServerURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("expected timeout 30, got %d", cfg.TimeoutSeconds)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected top_k 5, got %d", cfg.TopK)
	}
	if cfg.Units != UnitsFahrenheit {
		t.Errorf("expected fahrenheit, got %q", cfg.Units)
	}
	if cfg.Location.Label != "London" {
		t.Errorf("expected London, got %q", cfg.Location.Label)
	}
	// Unset fields keep their defaults.
	if cfg.Assistant.Provider != AssistantBackend {
		t.Errorf("expected default assistant, got %q", cfg.Assistant.Provider)
	}
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leafdoctor.yml")
	if err := os.WriteFile(path, []byte("server_url: http://file.example\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("LEAFDOCTOR_SERVER_URL", "http://env.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://env.example" {
		t.Errorf("env override not applied, got %q", cfg.ServerURL)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != DefaultConfig().ServerURL {
		t.Errorf("expected defaults, got %q", cfg.ServerURL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server_url", func(c *Config) { c.ServerURL = "" }},
		{"relative server_url", func(c *Config) { c.ServerURL = "localhost:8000" }},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }},
		{"top_k too small", func(c *Config) { c.TopK = 0 }},
		{"top_k too large", func(c *Config) { c.TopK = 11 }},
		{"bad units", func(c *Config) { c.Units = "kelvin" }},
		{"bad assistant", func(c *Config) { c.Assistant.Provider = "gemini" }},
		{"openai without model", func(c *Config) {
			c.Assistant.Provider = AssistantOpenAI
			c.Assistant.Model = ""
		}},
		{"latitude out of range", func(c *Config) { c.Location.Latitude = 91 }},
		{"longitude out of range", func(c *Config) { c.Location.Longitude = -181 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yml")

	cfg := DefaultConfig()
	cfg.ServerURL = "https://saved.example"
	cfg.Location.Label = "Berlin"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ServerURL != "https://saved.example" {
		t.Errorf("round trip lost server_url: %q", loaded.ServerURL)
	}
	if loaded.Location.Label != "Berlin" {
		t.Errorf("round trip lost location label: %q", loaded.Location.Label)
	}
}
