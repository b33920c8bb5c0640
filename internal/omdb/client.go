// Package omdb is a thin client for the OMDb HTTP API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrInvalidAPIKey indicates OMDb rejected the configured API key.
var ErrInvalidAPIKey = errors.New("omdb: invalid api key")

// SearchResponse mirrors the OMDb search payload.
type SearchResponse struct {
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error"`
}

// SearchItem is a single result entry as OMDb returns it.
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Poster string `json:"Poster"`
}

// Client queries OMDb with a bounded per-request timeout.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient creates an OMDb client for the given base URL and API key.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Search performs a title search restricted to movies. OMDb signals
// "no results" inside a 200 response (Response=="False"), which is
// returned as a normal SearchResponse; the caller decides how to map it.
func (c *Client) Search(ctx context.Context, title string) (*SearchResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("s", title)
	q.Set("type", "movie")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call omdb: %w", err)
	}
	defer resp.Body.Close()

	// OMDb answers 401 with {"Response":"False","Error":"Invalid API key!"}.
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidAPIKey
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	var body SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	return &body, nil
}
