package assistant

import (
	"context"

	"github.com/leafdoctor/leafdoctor/internal/api"
)

// BackendProvider forwards chats to the LeafDoctor backend, which holds
// the generative-AI integration server-side.
type BackendProvider struct {
	client *api.Client
}

// NewBackendProvider creates the default assistant provider.
func NewBackendProvider(client *api.Client) *BackendProvider {
	return &BackendProvider{client: client}
}

func (p *BackendProvider) Name() string {
	return "backend"
}

func (p *BackendProvider) Reply(ctx context.Context, message string, history []api.ChatMessage) (string, error) {
	return p.client.Chat(ctx, message, history)
}
