package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// PredictOptions controls how a prediction request is made. When Save is
// set the backend persists the diagnosis under the account identified by
// Token; both travel as query parameters per the backend contract.
type PredictOptions struct {
	Save  bool
	Token string
}

// Predict uploads a leaf image and returns the ranked predictions with
// generated advice. Exactly one request is sent per call.
func (c *Client) Predict(ctx context.Context, filename string, image io.Reader, opts PredictOptions) (*PredictResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing upload: %w", err)
	}

	endpoint := c.baseURL + "/predict"
	query := url.Values{}
	if opts.Save {
		query.Set("save", "true")
	}
	if opts.Token != "" {
		query.Set("token", opts.Token)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result PredictResult
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
