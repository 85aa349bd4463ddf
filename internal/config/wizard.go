package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to LeafDoctor! Let's configure your client.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend server URL.
	serverPrompt := promptui.Prompt{
		Label:   "LeafDoctor backend URL",
		Default: cfg.ServerURL,
		Validate: func(s string) error {
			if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
				return fmt.Errorf("must start with http:// or https://")
			}
			return nil
		},
	}
	serverURL, err := serverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server URL: %w", err)
	}
	cfg.ServerURL = strings.TrimRight(serverURL, "/")

	// 2. Location for the weather card.
	labelPrompt := promptui.Prompt{
		Label:   "Your location name (for the weather card, blank to skip)",
		Default: "",
	}
	label, err := labelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("location label: %w", err)
	}
	cfg.Location.Label = strings.TrimSpace(label)

	if cfg.Location.Label != "" {
		lat, err := promptFloat("Latitude", -90, 90)
		if err != nil {
			return nil, err
		}
		lon, err := promptFloat("Longitude", -180, 180)
		if err != nil {
			return nil, err
		}
		cfg.Location.Latitude = lat
		cfg.Location.Longitude = lon
	}

	// 3. Temperature units.
	unitsPrompt := promptui.Select{
		Label: "Temperature units",
		Items: []string{"celsius", "fahrenheit"},
	}
	_, unitsStr, err := unitsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("units selection: %w", err)
	}
	cfg.Units = Units(unitsStr)

	// 4. Assistant provider.
	assistantPrompt := promptui.Select{
		Label: "Chat assistant",
		Items: []string{
			"backend: LeafDoctor server answers chats (recommended)",
			"openai:  OpenAI-compatible endpoint (needs OPENAI_API_KEY)",
		},
	}
	assistantIdx, _, err := assistantPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("assistant selection: %w", err)
	}
	providers := []AssistantProvider{AssistantBackend, AssistantOpenAI}
	cfg.Assistant.Provider = providers[assistantIdx]

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", path)
	fmt.Println("Try it out: leafdoctor diagnose path/to/leaf.jpg")
	return cfg, nil
}

func promptFloat(label string, min, max float64) (float64, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("must be a number")
			}
			if v < min || v > max {
				return fmt.Errorf("must be between %g and %g", min, max)
			}
			return nil
		},
	}
	s, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, nil
}
