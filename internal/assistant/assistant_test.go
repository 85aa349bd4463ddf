package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/config"
)

func TestBackendProviderForwardsChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req api.ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Message != "Why are my leaves curling?" {
			t.Errorf("unexpected message: %q", req.Message)
		}
		if len(req.History) != 1 {
			t.Errorf("expected 1 history turn, got %d", len(req.History))
		}
		w.Write([]byte(`{"response":"Curling often means heat stress or mites."}`))
	}))
	defer server.Close()

	provider := NewBackendProvider(api.New(server.URL, 5*time.Second))
	if provider.Name() != "backend" {
		t.Errorf("unexpected name: %q", provider.Name())
	}

	history := []api.ChatMessage{{Role: "user", Content: "Hi"}}
	reply, err := provider.Reply(context.Background(), "Why are my leaves curling?", history)
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if reply != "Curling often means heat stress or mites." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestFactorySelectsBackendByDefault(t *testing.T) {
	backend := api.New("http://localhost:8000", time.Second)

	provider, err := New(config.AssistantConfig{}, backend)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if provider.Name() != "backend" {
		t.Errorf("expected backend provider, got %q", provider.Name())
	}
}

func TestFactoryOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")

	_, err := New(config.AssistantConfig{Provider: config.AssistantOpenAI, Model: "gpt-4o-mini"}, nil)
	if err == nil {
		t.Error("expected error without OPENAI_API_KEY")
	}
}

func TestFactoryOpenAIWithKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	provider, err := New(config.AssistantConfig{Provider: config.AssistantOpenAI, Model: "gpt-4o-mini"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("expected openai provider, got %q", provider.Name())
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	if _, err := New(config.AssistantConfig{Provider: "gemini"}, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}
