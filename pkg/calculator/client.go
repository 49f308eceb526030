package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bastiangx/citycomplete/internal/metrics"
	"github.com/charmbracelet/log"
)

// Result is the calculator's answer to a submission.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// Client posts submissions to the calculator endpoint.
type Client struct {
	URL  string
	HTTP *http.Client
}

// NewClient creates a client for url using http.DefaultClient.
func NewClient(url string) *Client {
	return &Client{URL: url, HTTP: http.DefaultClient}
}

// Submit validates sub and posts it as JSON. Validation errors are returned
// before anything is sent.
func (c *Client) Submit(ctx context.Context, sub Submission) (Result, error) {
	if err := sub.Validate(); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		return Result{}, err
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return Result{}, fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		metrics.Submissions.WithLabelValues("failed").Inc()
		return Result{}, fmt.Errorf("submit: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return Result{}, fmt.Errorf("submit: decoding response: %w", err)
	}
	metrics.Submissions.WithLabelValues("ok").Inc()
	log.Debugf("Submission accepted with id %s", res.ID)
	return res, nil
}
