package api

import (
	"context"
	"fmt"
	"net/http"
)

// MyGarden lists the caller's saved diagnoses.
func (c *Client) MyGarden(ctx context.Context, token string) ([]Diagnosis, error) {
	var records []Diagnosis
	if err := c.getJSON(ctx, "/my-garden", token, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteDiagnosis removes a saved diagnosis (and its stored image) by id.
func (c *Client) DeleteDiagnosis(ctx context.Context, token string, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/diagnoses/%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.doJSON(req, nil)
}
