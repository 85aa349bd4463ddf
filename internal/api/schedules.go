package api

import (
	"context"
	"fmt"
)

// Schedules lists the caller's watering schedules.
func (c *Client) Schedules(ctx context.Context, token string) ([]Schedule, error) {
	var schedules []Schedule
	if err := c.getJSON(ctx, "/schedules", token, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// createScheduleRequest is the JSON payload of POST /schedules.
type createScheduleRequest struct {
	DiagnosisID       int64 `json:"diagnosis_id"`
	WaterIntervalDays int   `json:"water_interval_days"`
}

// CreateSchedule sets the watering interval for a diagnosis. The backend
// upserts: an existing schedule for the diagnosis has its interval updated.
func (c *Client) CreateSchedule(ctx context.Context, token string, diagnosisID int64, intervalDays int) (*Schedule, error) {
	var schedule Schedule
	req := createScheduleRequest{DiagnosisID: diagnosisID, WaterIntervalDays: intervalDays}
	if err := c.postJSON(ctx, "/schedules", req, token, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// WaterPlant marks the plant behind a diagnosis as watered today. The
// route keys on the diagnosis id, matching the backend.
func (c *Client) WaterPlant(ctx context.Context, token string, diagnosisID int64) error {
	path := fmt.Sprintf("/schedules/%d/water", diagnosisID)
	return c.postJSON(ctx, path, struct{}{}, token, nil)
}
