// Package assistant answers conversational questions about plant care.
// The default provider forwards to the backend's /chat endpoint; an
// OpenAI-compatible provider exists for deployments without it.
package assistant

import (
	"context"

	"github.com/leafdoctor/leafdoctor/internal/api"
)

// systemPrompt matches the persona the backend gives its own assistant.
const systemPrompt = "You are 'LeafDoctor AI', an agricultural expert. Keep answers concise."

// Provider answers a message given the prior conversation turns.
type Provider interface {
	// Name returns the provider identifier (e.g. "backend", "openai").
	Name() string

	// Reply returns the assistant's answer. History holds prior turns in
	// order; providers are stateless and replay it on every call.
	Reply(ctx context.Context, message string, history []api.ChatMessage) (string, error)
}
