package api

import (
	"fmt"
	"time"
)

// Prediction is one ranked disease prediction from the backend.
type Prediction struct {
	ClassName       string  `json:"class_name"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// PredictResult is the response of POST /predict. Predictions arrive
// ranked by the backend and are rendered in that order.
type PredictResult struct {
	TopPredictions []Prediction `json:"top_3_predictions"`
	Advice         string       `json:"advice"`
}

// Token is the response of POST /token and POST /register.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the response of GET /users/me.
type User struct {
	Email string `json:"email"`
	ID    int64  `json:"id"`
}

// Diagnosis is one saved record from GET /my-garden. Confidence arrives
// as a "0.87"-style string, timestamps as backend-formatted text.
type Diagnosis struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	DiseaseName string `json:"disease_name"`
	Confidence  string `json:"confidence"`
	Advice      string `json:"advice"`
	Timestamp   string `json:"timestamp"`
}

// Schedule is a watering reminder tied to a diagnosis.
type Schedule struct {
	ID                int64  `json:"id"`
	DiagnosisID       int64  `json:"diagnosis_id"`
	UserID            int64  `json:"user_id"`
	WaterIntervalDays int    `json:"water_interval_days"`
	LastWateredDate   string `json:"last_watered_date"`
}

// lastWateredLayout is the bare date format the backend stores.
const lastWateredLayout = "2006-01-02"

// LastWatered parses the last-watered date.
func (s Schedule) LastWatered() (time.Time, error) {
	t, err := time.Parse(lastWateredLayout, s.LastWateredDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last_watered_date %q: %w", s.LastWateredDate, err)
	}
	return t, nil
}

// NextWatering returns the date the plant is next due for water.
func (s Schedule) NextWatering() (time.Time, error) {
	last, err := s.LastWatered()
	if err != nil {
		return time.Time{}, err
	}
	return last.AddDate(0, 0, s.WaterIntervalDays), nil
}

// Overdue reports whether the next watering date has passed as of now.
func (s Schedule) Overdue(now time.Time) bool {
	next, err := s.NextWatering()
	if err != nil {
		return false
	}
	return now.Truncate(24 * time.Hour).After(next) || now.Truncate(24*time.Hour).Equal(next)
}

// ChatMessage is one turn of assistant conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload of POST /chat.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}

// ChatResponse is the response of POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}
