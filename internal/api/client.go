// Package api implements the HTTP client for the kyotei-ai v5 analysis
// backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// DefaultBaseURL is where a locally run backend listens.
const DefaultBaseURL = "http://localhost:5000"

// DefaultTimeout bounds every request. The analyze endpoint scrapes live
// data server-side and can legitimately take close to a minute.
const DefaultTimeout = 60 * time.Second

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the v5 backend. One request per call, no automatic
// retries; callers decide their own retry policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a backend client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// analyzeRequest is the body for POST /api/v5/analyze.
type analyzeRequest struct {
	Venue      string `json:"venue"`
	RaceNumber int    `json:"race_number"`
}

// Analyze requests the precomputed analysis for one race.
func (c *Client) Analyze(ctx context.Context, venue string, raceNumber int) (*model.AnalysisResponse, error) {
	var resp model.AnalysisResponse
	err := c.post(ctx, "/api/v5/analyze", analyzeRequest{Venue: venue, RaceNumber: raceNumber}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats fetches the backend's aggregate prediction statistics.
func (c *Client) Stats(ctx context.Context) (*model.ServiceStats, error) {
	var stats model.ServiceStats
	if err := c.get(ctx, "/api/v5/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RegisterResult reports the actual outcome of a predicted race.
func (c *Client) RegisterResult(ctx context.Context, report model.ResultReport) (*model.ResultAck, error) {
	var ack model.ResultAck
	if err := c.post(ctx, "/api/v5/result", report, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// Ping hits the liveness endpoint.
func (c *Client) Ping(ctx context.Context) (*model.ServiceInfo, error) {
	var info model.ServiceInfo
	if err := c.get(ctx, "/", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
