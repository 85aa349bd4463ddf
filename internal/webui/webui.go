// Package webui serves the local single-page web client: leaf upload and
// camera capture, diagnosis results, My Garden, watering schedules, the
// weather card and the assistant chat widget.
package webui

import (
	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/assistant"
	"github.com/leafdoctor/leafdoctor/internal/config"
	"github.com/leafdoctor/leafdoctor/internal/history"
	"github.com/leafdoctor/leafdoctor/internal/weather"
)

// WebUI bundles the backends the web client talks to. All browser calls
// go through this process; the page itself never contacts the inference
// server directly.
type WebUI struct {
	backend  *api.Client
	provider assistant.Provider
	weather  *weather.Client
	geocoder *weather.Geocoder
	journal  *history.Store
	cfg      config.Config
	markdown goldmark.Markdown
}

// New creates the web UI. journal may be nil when local journaling is
// disabled.
func New(backend *api.Client, provider assistant.Provider, wc *weather.Client, geo *weather.Geocoder, journal *history.Store, cfg config.Config) *WebUI {
	return &WebUI{
		backend:  backend,
		provider: provider,
		weather:  wc,
		geocoder: geo,
		journal:  journal,
		cfg:      cfg,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// RegisterRoutes mounts all web UI routes onto the given router.
func (u *WebUI) RegisterRoutes(r chi.Router) {
	r.Get("/", u.ServeIndex)

	r.Post("/api/predict", u.handlePredict)
	r.Post("/api/login", u.handleLogin)
	r.Post("/api/register", u.handleRegister)
	r.Get("/api/me", u.handleMe)
	r.Get("/api/garden", u.handleGarden)
	r.Delete("/api/garden/{id}", u.handleDeleteDiagnosis)
	r.Get("/api/schedules", u.handleSchedules)
	r.Post("/api/schedules", u.handleCreateSchedule)
	r.Post("/api/schedules/{id}/water", u.handleWater)
	r.Get("/api/weather", u.handleWeather)
	r.Get("/api/recent", u.handleRecent)
	r.Get("/ws/chat", u.handleWebSocket)
}
