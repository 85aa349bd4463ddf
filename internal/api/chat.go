package api

import "context"

// Chat sends a message plus prior conversation turns to the backend
// assistant and returns its reply. The backend is stateless: the full
// history is replayed on every call.
func (c *Client) Chat(ctx context.Context, message string, history []ChatMessage) (string, error) {
	if history == nil {
		history = []ChatMessage{}
	}
	var resp ChatResponse
	if err := c.postJSON(ctx, "/chat", ChatRequest{Message: message, History: history}, "", &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
