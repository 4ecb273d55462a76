// Package search queries the DuckDuckGo Instant Answer API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/quanty-ai/quanty/internal/config"
)

// Result holds the Instant Answer fields the assistant cares about.
type Result struct {
	Heading        string      `json:"Heading"`
	AbstractText   string      `json:"AbstractText"`
	AbstractSource string      `json:"AbstractSource"`
	AbstractURL    string      `json:"AbstractURL"`
	Answer         textOrEmpty `json:"Answer"`
	AnswerType     string      `json:"AnswerType"`
	Definition     string      `json:"Definition"`
	DefinitionURL  string      `json:"DefinitionURL"`
}

// textOrEmpty tolerates the non-string Answer payloads some instant
// answers return; anything but a JSON string decodes to "".
type textOrEmpty string

func (t *textOrEmpty) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ""
		return nil
	}
	*t = textOrEmpty(s)
	return nil
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(cfg config.SearchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	slog.Debug("Querying DuckDuckGo", "query", query)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &result, nil
}
