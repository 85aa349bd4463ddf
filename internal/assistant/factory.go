package assistant

import (
	"fmt"
	"os"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/config"
)

// New builds the assistant provider selected by the configuration.
func New(cfg config.AssistantConfig, backend *api.Client) (Provider, error) {
	switch cfg.Provider {
	case "", config.AssistantBackend:
		return NewBackendProvider(backend), nil
	case config.AssistantOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for the openai assistant")
		}
		return NewOpenAIProvider(apiKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q (valid: backend, openai)", cfg.Provider)
	}
}
