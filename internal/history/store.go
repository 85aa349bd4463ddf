// Package history keeps a local journal of every diagnosis run from this
// machine, including anonymous ones the backend never stores. The remote
// "My Garden" list stays authoritative for saved records; this journal
// only feeds `garden --local`, PDF report regeneration, and the web UI's
// recent list.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/db"
)

// Entry is one journaled diagnosis.
type Entry struct {
	ID          string           `json:"id"`
	ImagePath   string           `json:"image_path"`
	DiseaseName string           `json:"disease_name"`
	Confidence  float64          `json:"confidence"`
	Predictions []api.Prediction `json:"predictions"`
	Advice      string           `json:"advice"`
	SavedRemote bool             `json:"saved_remote"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Filter narrows List results.
type Filter struct {
	Limit     int
	Since     time.Time
	SavedOnly bool
}

// Store manages the diagnosis journal.
type Store struct {
	db *db.DB
}

// NewStore creates a journal store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record journals a diagnosis result.
func (s *Store) Record(ctx context.Context, e Entry) (*Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Predictions == nil {
		e.Predictions = []api.Prediction{}
	}

	predictions, err := json.Marshal(e.Predictions)
	if err != nil {
		return nil, fmt.Errorf("encoding predictions: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO diagnosis_log (id, image_path, disease_name, confidence, predictions, advice, saved_remote, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ImagePath, e.DiseaseName, e.Confidence, string(predictions), e.Advice, e.SavedRemote, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting diagnosis: %w", err)
	}
	return &e, nil
}

// Get retrieves a journal entry by id. Returns nil when not found.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, image_path, disease_name, confidence, predictions, advice, saved_remote, created_at
		 FROM diagnosis_log WHERE id = ?`, id,
	)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting diagnosis: %w", err)
	}
	return e, nil
}

// List returns journal entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `SELECT id, image_path, disease_name, confidence, predictions, advice, saved_remote, created_at
		 FROM diagnosis_log WHERE 1=1`
	args := []interface{}{}

	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since)
	}
	if filter.SavedOnly {
		query += " AND saved_remote = 1"
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing diagnoses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning diagnosis: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Delete removes a journal entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM diagnosis_log WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting diagnosis: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("diagnosis %s not found", id)
	}
	return nil
}

// CountToday returns how many diagnoses were journaled since local midnight.
func (s *Store) CountToday(ctx context.Context, now time.Time) (int, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM diagnosis_log WHERE created_at >= ?`, midnight.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting diagnoses: %w", err)
	}
	return count, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var predictions string
	if err := row.Scan(&e.ID, &e.ImagePath, &e.DiseaseName, &e.Confidence, &predictions, &e.Advice, &e.SavedRemote, &e.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(predictions), &e.Predictions); err != nil {
		return nil, fmt.Errorf("decoding predictions: %w", err)
	}
	return &e, nil
}
