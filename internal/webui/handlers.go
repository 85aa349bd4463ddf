package webui

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/config"
	"github.com/leafdoctor/leafdoctor/internal/history"
	"github.com/leafdoctor/leafdoctor/internal/weather"
)

// maxUploadBytes caps leaf image uploads at 16 MB.
const maxUploadBytes = 16 << 20

// predictResponse extends the backend result with pre-rendered advice
// HTML so the page doesn't need a markdown parser.
type predictResponse struct {
	TopPredictions []api.Prediction `json:"top_3_predictions"`
	Advice         string           `json:"advice"`
	AdviceHTML     string           `json:"advice_html"`
}

func (u *WebUI) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	opts := api.PredictOptions{
		Save:  r.FormValue("save") == "true",
		Token: bearerToken(r),
	}
	if opts.Save && opts.Token == "" {
		writeError(w, http.StatusUnauthorized, "log in to save to My Garden")
		return
	}

	result, err := u.backend.Predict(r.Context(), header.Filename, file, opts)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	if u.journal != nil && len(result.TopPredictions) > 0 {
		top := result.TopPredictions[0]
		_, jerr := u.journal.Record(r.Context(), history.Entry{
			ImagePath:   header.Filename,
			DiseaseName: top.ClassName,
			Confidence:  top.ConfidenceScore,
			Predictions: result.TopPredictions,
			Advice:      result.Advice,
			SavedRemote: opts.Save,
		})
		if jerr != nil {
			// Journal failures never block a diagnosis.
			writeJSON(w, http.StatusOK, u.newPredictResponse(result))
			return
		}
	}

	writeJSON(w, http.StatusOK, u.newPredictResponse(result))
}

func (u *WebUI) newPredictResponse(result *api.PredictResult) predictResponse {
	var buf bytes.Buffer
	if err := u.markdown.Convert([]byte(result.Advice), &buf); err != nil {
		buf.Reset()
	}
	return predictResponse{
		TopPredictions: result.TopPredictions,
		Advice:         result.Advice,
		AdviceHTML:     buf.String(),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (u *WebUI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := u.backend.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (u *WebUI) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := u.backend.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (u *WebUI) handleMe(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	user, err := u.backend.Me(r.Context(), token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (u *WebUI) handleGarden(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	records, err := u.backend.MyGarden(r.Context(), token)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	if records == nil {
		records = []api.Diagnosis{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (u *WebUI) handleDeleteDiagnosis(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid diagnosis id")
		return
	}

	if err := u.backend.DeleteDiagnosis(r.Context(), token, id); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// scheduleResponse adds computed due-date fields to a schedule.
type scheduleResponse struct {
	api.Schedule
	NextWatering string `json:"next_watering,omitempty"`
	Overdue      bool   `json:"overdue"`
}

func (u *WebUI) handleSchedules(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	schedules, err := u.backend.Schedules(r.Context(), token)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	now := time.Now()
	out := make([]scheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		resp := scheduleResponse{Schedule: s}
		if next, err := s.NextWatering(); err == nil {
			resp.NextWatering = next.Format("2006-01-02")
			resp.Overdue = s.Overdue(now)
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

type createScheduleRequest struct {
	DiagnosisID       int64 `json:"diagnosis_id"`
	WaterIntervalDays int   `json:"water_interval_days"`
}

func (u *WebUI) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DiagnosisID <= 0 || req.WaterIntervalDays <= 0 {
		writeError(w, http.StatusBadRequest, "diagnosis_id and water_interval_days must be positive")
		return
	}

	schedule, err := u.backend.CreateSchedule(r.Context(), token, req.DiagnosisID, req.WaterIntervalDays)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (u *WebUI) handleWater(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid diagnosis id")
		return
	}

	if err := u.backend.WaterPlant(r.Context(), token, id); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "watered"})
}

// weatherResponse is the combined weather card payload.
type weatherResponse struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Unit        string  `json:"unit"`
	Condition   string  `json:"condition"`
	IsDay       bool    `json:"is_day"`
	Tip         string  `json:"tip"`
}

func (u *WebUI) handleWeather(w http.ResponseWriter, r *http.Request) {
	lat := u.cfg.Location.Latitude
	lon := u.cfg.Location.Longitude
	if v := r.URL.Query().Get("lat"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			lat = f
		}
	}
	if v := r.URL.Query().Get("lon"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			lon = f
		}
	}
	if lat == 0 && lon == 0 {
		writeError(w, http.StatusBadRequest, "no location configured; pass lat and lon or set one with leafdoctor init")
		return
	}

	current, err := u.weather.Current(r.Context(), lat, lon, u.cfg.Units == config.UnitsFahrenheit)
	if err != nil {
		writeError(w, http.StatusBadGateway, "weather lookup failed: "+err.Error())
		return
	}

	location := u.cfg.Location.Label
	if location == "" && u.geocoder != nil {
		if name, err := u.geocoder.ReverseGeocode(r.Context(), lat, lon); err == nil {
			location = name
		}
	}

	writeJSON(w, http.StatusOK, weatherResponse{
		Location:    location,
		Temperature: current.Temperature,
		Unit:        current.Unit,
		Condition:   current.Condition,
		IsDay:       current.IsDay,
		Tip:         weather.TipFor(current.WeatherCode, time.Now()),
	})
}

func (u *WebUI) handleRecent(w http.ResponseWriter, r *http.Request) {
	if u.journal == nil {
		writeJSON(w, http.StatusOK, []history.Entry{})
		return
	}

	entries, err := u.journal.List(r.Context(), history.Filter{Limit: 10})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeBackendError passes the inference server's status and detail
// through unchanged; transport failures surface as 502.
func writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.StatusCode, apiErr.Detail)
		return
	}
	writeError(w, http.StatusBadGateway, "backend unreachable: "+err.Error())
}
