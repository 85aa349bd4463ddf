package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/config"
	"github.com/leafdoctor/leafdoctor/internal/db"
	"github.com/leafdoctor/leafdoctor/internal/history"
)

// stubProvider returns a canned assistant reply.
type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) Reply(ctx context.Context, message string, history []api.ChatMessage) (string, error) {
	return s.reply, s.err
}

// fakeBackend emulates the inference server's endpoints.
type fakeBackend struct {
	predictCalls atomic.Int64
	lastToken    string
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		f.predictCalls.Add(1)
		f.lastToken = r.URL.Query().Get("token")
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			http.Error(w, `{"detail":"bad upload"}`, http.StatusBadRequest)
			return
		}
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, `{"detail":"missing file"}`, http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(api.PredictResult{
			TopPredictions: []api.Prediction{
				{ClassName: "Tomato___Early_blight", ConfidenceScore: 0.87},
				{ClassName: "Tomato___Late_blight", ConfidenceScore: 0.09},
				{ClassName: "Tomato___healthy", ConfidenceScore: 0.04},
			},
			Advice: "**Remove infected leaves.**",
		})
	})
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostFormValue("username") != "gardener@example.com" || r.PostFormValue("password") != "hunter2" {
			http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(api.Token{AccessToken: "tok-123", TokenType: "bearer"})
	})
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.Token{AccessToken: "tok-new", TokenType: "bearer"})
	})
	mux.HandleFunc("GET /my-garden", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			http.Error(w, `{"detail":"Not authenticated"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]api.Diagnosis{
			{ID: 7, DiseaseName: "Potato___Late_blight", Confidence: "0.91", Timestamp: "2026-08-20T10:00:00"},
		})
	})
	mux.HandleFunc("GET /schedules", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Schedule{
			{ID: 1, DiagnosisID: 7, WaterIntervalDays: 2, LastWateredDate: "2000-01-01"},
		})
	})
	return mux
}

func setupTest(t *testing.T) (*WebUI, *fakeBackend, chi.Router) {
	t.Helper()

	backend := &fakeBackend{}
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	client := api.New(backendSrv.URL, 5*time.Second)
	ui := New(client, &stubProvider{reply: "Water in the morning."}, nil, nil,
		history.NewStore(database), config.Config{TopK: 3})

	r := chi.NewRouter()
	ui.RegisterRoutes(r)
	return ui, backend, r
}

func multipartPredictRequest(t *testing.T, save bool, token string) *http.Request {
	t.Helper()

	body := &strings.Builder{}
	boundary := "leafdoctor-test-boundary"
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"leaf.jpg\"\r\n")
	body.WriteString("Content-Type: image/jpeg\r\n\r\n")
	body.WriteString("fake-jpeg-bytes")
	body.WriteString("\r\n--" + boundary + "\r\n")
	body.WriteString("Content-Disposition: form-data; name=\"save\"\r\n\r\n")
	if save {
		body.WriteString("true")
	} else {
		body.WriteString("false")
	}
	body.WriteString("\r\n--" + boundary + "--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestPredictProxiesOnce(t *testing.T) {
	_, backend, r := setupTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartPredictRequest(t, false, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if n := backend.predictCalls.Load(); n != 1 {
		t.Errorf("expected exactly 1 backend call, got %d", n)
	}

	var resp predictResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.TopPredictions) != 3 {
		t.Fatalf("expected 3 predictions, got %d", len(resp.TopPredictions))
	}
	if resp.TopPredictions[0].ClassName != "Tomato___Early_blight" {
		t.Errorf("prediction order not preserved: %q", resp.TopPredictions[0].ClassName)
	}
	if !strings.Contains(resp.AdviceHTML, "<strong>") {
		t.Errorf("expected rendered advice HTML, got %q", resp.AdviceHTML)
	}
}

func TestPredictSaveRequiresLogin(t *testing.T) {
	_, backend, r := setupTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartPredictRequest(t, true, ""))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if n := backend.predictCalls.Load(); n != 0 {
		t.Errorf("backend should not be called, got %d calls", n)
	}
}

func TestPredictSaveForwardsToken(t *testing.T) {
	_, backend, r := setupTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartPredictRequest(t, true, "tok-123"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if backend.lastToken != "tok-123" {
		t.Errorf("expected token forwarded as query param, got %q", backend.lastToken)
	}
}

func TestPredictJournalsResult(t *testing.T) {
	ui, _, r := setupTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartPredictRequest(t, false, ""))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	entries, err := ui.journal.List(t.Context(), history.Filter{})
	if err != nil {
		t.Fatalf("listing journal: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(entries))
	}
	if entries[0].DiseaseName != "Tomato___Early_blight" {
		t.Errorf("journaled wrong disease: %q", entries[0].DiseaseName)
	}
}

func TestLoginReturnsToken(t *testing.T) {
	_, _, r := setupTest(t)

	body := `{"email":"gardener@example.com","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var tok api.Token
	if err := json.NewDecoder(w.Body).Decode(&tok); err != nil {
		t.Fatalf("decoding token: %v", err)
	}
	if tok.AccessToken != "tok-123" {
		t.Errorf("unexpected token %q", tok.AccessToken)
	}
}

func TestLoginRejectedPassesStatusThrough(t *testing.T) {
	_, _, r := setupTest(t)

	body := `{"email":"gardener@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 passed through, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Incorrect email or password") {
		t.Errorf("expected backend detail in body, got %s", w.Body.String())
	}
}

func TestGardenRequiresLogin(t *testing.T) {
	_, _, r := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/garden", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGardenReturnsRecords(t *testing.T) {
	_, _, r := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/garden", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var records []api.Diagnosis
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatalf("decoding records: %v", err)
	}
	if len(records) != 1 || records[0].ID != 7 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestSchedulesComputeOverdue(t *testing.T) {
	_, _, r := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var schedules []scheduleResponse
	if err := json.NewDecoder(w.Body).Decode(&schedules); err != nil {
		t.Fatalf("decoding schedules: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(schedules))
	}
	if !schedules[0].Overdue {
		t.Error("schedule last watered in 2000 should be overdue")
	}
	if schedules[0].NextWatering != "2000-01-03" {
		t.Errorf("unexpected next watering %q", schedules[0].NextWatering)
	}
}

func TestRecentReturnsJournal(t *testing.T) {
	ui, _, r := setupTest(t)

	_, err := ui.journal.Record(t.Context(), history.Entry{
		ImagePath:   "leaf.jpg",
		DiseaseName: "Apple___Apple_scab",
		Confidence:  0.75,
	})
	if err != nil {
		t.Fatalf("seeding journal: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/recent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entries []history.Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding entries: %v", err)
	}
	if len(entries) != 1 || entries[0].DiseaseName != "Apple___Apple_scab" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestWebSocketChat(t *testing.T) {
	_, _, r := setupTest(t)

	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	if err := conn.WriteJSON(chatRequest{Content: "How often should I water basil?"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reply chatResponse
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Type != "response" {
		t.Errorf("expected response type, got %q", reply.Type)
	}
	if reply.Content != "Water in the morning." {
		t.Errorf("unexpected reply %q", reply.Content)
	}
}

func TestWebSocketEmptyContent(t *testing.T) {
	_, _, r := setupTest(t)

	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(chatRequest{Content: ""}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var reply chatResponse
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply.Type != "error" {
		t.Errorf("expected error type, got %q", reply.Type)
	}
	if !strings.Contains(reply.Content, "content is required") {
		t.Errorf("expected content error, got %q", reply.Content)
	}
}

func TestServeIndex(t *testing.T) {
	_, _, r := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "LeafDoctor") {
		t.Error("expected HTML to contain 'LeafDoctor'")
	}
}
