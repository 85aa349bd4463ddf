package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/config"
	"github.com/leafdoctor/leafdoctor/internal/render"
	"github.com/leafdoctor/leafdoctor/internal/weather"
)

const loginHint = "Not logged in. Run `leafdoctor login` first."

// handleDiagnoseLeaf uploads a leaf image and returns predictions plus advice.
func (s *Server) handleDiagnoseLeaf(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imagePath, err := request.RequireString("image_path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: image_path"), nil
	}

	save := request.GetBool("save", false)
	if save && s.token == "" {
		return mcp.NewToolResultError(loginHint), nil
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot open image: %v", err)), nil
	}
	defer f.Close()

	result, err := s.backend.Predict(ctx, imagePath, f, api.PredictOptions{
		Save:  save,
		Token: s.token,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diagnosis failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatDiagnosis(result, save)), nil
}

// handleListGarden lists the user's saved diagnoses.
func (s *Server) handleListGarden(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.token == "" {
		return mcp.NewToolResultError(loginHint), nil
	}

	records, err := s.backend.MyGarden(ctx, s.token)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing garden failed: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("The garden is empty. Diagnose a leaf with save=true to add one."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d saved diagnosis(es):\n", len(records))
	for _, r := range records {
		fmt.Fprintf(&sb, "\n- id %d: %s (%s confidence), diagnosed %s",
			r.ID, render.PrettyLabel(r.DiseaseName), formatConfidence(r.Confidence), r.Timestamp)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetSchedules lists watering schedules with due-date status.
func (s *Server) handleGetSchedules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.token == "" {
		return mcp.NewToolResultError(loginHint), nil
	}

	schedules, err := s.backend.Schedules(ctx, s.token)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing schedules failed: %v", err)), nil
	}
	if len(schedules) == 0 {
		return mcp.NewToolResultText("No watering schedules set."), nil
	}

	now := time.Now()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d schedule(s):\n", len(schedules))
	for _, sched := range schedules {
		fmt.Fprintf(&sb, "\n- diagnosis %d: water every %d day(s), last watered %s",
			sched.DiagnosisID, sched.WaterIntervalDays, sched.LastWateredDate)
		if next, err := sched.NextWatering(); err == nil {
			fmt.Fprintf(&sb, ", next due %s", next.Format("2006-01-02"))
			if sched.Overdue(now) {
				sb.WriteString(" (OVERDUE)")
			}
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleWaterPlant resets a schedule's last-watered date to today.
func (s *Server) handleWaterPlant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.token == "" {
		return mcp.NewToolResultError(loginHint), nil
	}

	id := request.GetInt("diagnosis_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("missing required parameter: diagnosis_id"), nil
	}

	if err := s.backend.WaterPlant(ctx, s.token, int64(id)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("watering failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Marked diagnosis %d as watered today.", id)), nil
}

// handleGetWeather reports current conditions plus a care tip.
func (s *Server) handleGetWeather(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lat := request.GetFloat("latitude", s.cfg.Location.Latitude)
	lon := request.GetFloat("longitude", s.cfg.Location.Longitude)
	if lat == 0 && lon == 0 {
		return mcp.NewToolResultError("no location configured; pass latitude and longitude or run `leafdoctor init`"), nil
	}

	current, err := s.weather.Current(ctx, lat, lon, s.cfg.Units == config.UnitsFahrenheit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("weather lookup failed: %v", err)), nil
	}

	text := fmt.Sprintf("%s, %.1f%s, wind %.1f km/h.\nTip: %s",
		current.Condition, current.Temperature, current.Unit, current.WindSpeed,
		weather.TipFor(current.WeatherCode, time.Now()))
	return mcp.NewToolResultText(text), nil
}

// handleAskAssistant forwards a question to the configured assistant.
func (s *Server) handleAskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	reply, err := s.provider.Reply(ctx, question, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assistant failed: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}

// formatDiagnosis converts a prediction result into agent-readable text.
func formatDiagnosis(result *api.PredictResult, saved bool) string {
	var sb strings.Builder
	if len(result.TopPredictions) == 0 {
		sb.WriteString("No predictions returned.")
	} else {
		sb.WriteString("Ranked predictions:\n")
		for i, p := range result.TopPredictions {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, render.PrettyLabel(p.ClassName), render.Percent(p.ConfidenceScore))
		}
	}
	if result.Advice != "" {
		sb.WriteString("\nCare advice:\n")
		sb.WriteString(render.StripMarkdown(result.Advice))
	}
	if saved {
		sb.WriteString("\n\nSaved to the garden.")
	}
	return sb.String()
}

func formatConfidence(raw string) string {
	var v float64
	if _, err := fmt.Sscanf(raw, "%f", &v); err == nil {
		return render.Percent(v)
	}
	return raw
}
