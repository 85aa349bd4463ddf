package webui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/leafdoctor/leafdoctor/internal/api"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format. History is the
// prior conversation turns the page replays with each message.
type chatRequest struct {
	Content string            `json:"content"`
	History []api.ChatMessage `json:"history"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type    string `json:"type"` // "response" or "error"
	Content string `json:"content"`
}

func (u *WebUI) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("webui: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("webui: websocket read: %v", err)
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			u.sendChatError(conn, "invalid message format")
			continue
		}
		if req.Content == "" {
			u.sendChatError(conn, "content is required")
			continue
		}

		reply, err := u.provider.Reply(r.Context(), req.Content, req.History)
		if err != nil {
			u.sendChatError(conn, "assistant failed: "+err.Error())
			continue
		}

		u.sendChatResponse(conn, chatResponse{Type: "response", Content: reply})
	}
}

func (u *WebUI) sendChatResponse(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("webui: websocket write: %v", err)
	}
}

func (u *WebUI) sendChatError(conn *websocket.Conn, message string) {
	u.sendChatResponse(conn, chatResponse{Type: "error", Content: message})
}
