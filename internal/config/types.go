package config

// Units selects the temperature unit for weather lookups.
type Units string

const (
	UnitsCelsius    Units = "celsius"
	UnitsFahrenheit Units = "fahrenheit"
)

// AssistantProvider identifies which service answers assistant chats.
type AssistantProvider string

const (
	// AssistantBackend routes chats through the LeafDoctor backend's
	// /chat endpoint (the default; no API key needed on the client).
	AssistantBackend AssistantProvider = "backend"
	// AssistantOpenAI talks to an OpenAI-compatible endpoint directly,
	// for deployments running without the backend's advice proxy.
	AssistantOpenAI AssistantProvider = "openai"
)

// LocationConfig holds the coordinates used for weather and geocoding.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude" koanf:"latitude"`
	Longitude float64 `yaml:"longitude" koanf:"longitude"`
	Label     string  `yaml:"label" koanf:"label"`
}

// AssistantConfig selects and configures the chat assistant provider.
type AssistantConfig struct {
	Provider AssistantProvider `yaml:"provider" koanf:"provider"`
	Model    string            `yaml:"model" koanf:"model"`
	BaseURL  string            `yaml:"base_url" koanf:"base_url"`
}

// Config is the top-level leafdoctor configuration, corresponding to
// ~/.leafdoctor.yml.
type Config struct {
	ServerURL      string          `yaml:"server_url" koanf:"server_url"`
	TimeoutSeconds int             `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	TopK           int             `yaml:"top_k" koanf:"top_k"`
	SaveByDefault  bool            `yaml:"save_by_default" koanf:"save_by_default"`
	Units          Units           `yaml:"units" koanf:"units"`
	Location       LocationConfig  `yaml:"location" koanf:"location"`
	Assistant      AssistantConfig `yaml:"assistant" koanf:"assistant"`
	DataDir        string          `yaml:"data_dir" koanf:"data_dir"`
}
