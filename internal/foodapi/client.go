// Package foodapi talks to the remote food-name search API, the app's only
// network collaborator: a plain HTTP GET that returns a JSON list of strings.
package foodapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// MinQueryLength is the shortest query worth sending; the TUI never
// dispatches anything shorter.
const MinQueryLength = 2

// MaxBodySize is the maximum number of bytes read from a search response.
const MaxBodySize = 64 * 1024

// MaxResults caps how many suggestions a single search returns.
const MaxResults = 25

// ErrQueryTooShort is returned for queries below MinQueryLength.
var ErrQueryTooShort = errors.New("query too short")

// Client queries the food-name search API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// NewWithHTTPClient creates a Client with a custom http.Client (for testing).
func NewWithHTTPClient(baseURL string, c *http.Client) *Client {
	return &Client{baseURL: baseURL, http: c, log: zap.NewNop()}
}

// Search queries the API for food names matching the query and returns them
// in API order, capped at MaxResults.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must have http or https scheme, got %q", parsed.Scheme)
	}

	searchURL := parsed.JoinPath("search")
	q := searchURL.Query()
	q.Set("q", query)
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: HTTP %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, MaxBodySize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(names) > MaxResults {
		names = names[:MaxResults]
	}

	c.log.Debug("food search",
		zap.String("query", query),
		zap.Int("results", len(names)),
		zap.Duration("took", time.Since(start)))

	return names, nil
}

// IsAvailable probes the API with a trivial query. Used by onboarding and
// the startup check; the app still works offline, suggestions just won't.
func (c *Client) IsAvailable(ctx context.Context) error {
	_, err := c.Search(ctx, "te")
	return err
}
