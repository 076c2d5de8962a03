// Package luma implements the Luma platform adapter: a REST client keyed
// by a static API key (held in the token store like any other credential)
// and a provider exposing calendar operations behind the uniform action
// vocabulary.
package luma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/services"
)

const (
	requestTimeout   = 30 * time.Second
	maxResponseBytes = 4 << 20

	// proactiveRate throttles below Luma's 300-requests-per-minute quota.
	proactiveRate = 4.0

	// maxPages bounds auto-pagination so a huge calendar cannot wedge a
	// single tool call.
	maxPages = 10

	apiKeyHeader = "x-luma-api-key"
)

// Client is the low-level REST transport for Luma. The API key is a
// non-expiring credential in the token store, so the refreshing client is
// constructed with a nil refresher: absence surfaces as
// ErrNotAuthenticated and a server-side rejection is terminal.
type Client struct {
	base    string
	http    *http.Client
	auth    *services.RefreshingClient
	limiter *rate.Limiter
}

// NewClient builds the transport against the given API base URL.
func NewClient(base string, auth *services.RefreshingClient) *Client {
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: requestTimeout},
		auth:    auth,
		limiter: rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Get performs a GET request and decodes the JSON response.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	target := c.base + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode luma request: %w", err)
		}
	}
	return c.do(ctx, http.MethodPost, c.base+path, payload)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var result map[string]any
	err := c.auth.Call(ctx, func(ctx context.Context, apiKey string) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return fmt.Errorf("build luma request: %w", err)
		}
		req.Header.Set(apiKeyHeader, apiKey)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%w: luma request: %v", domain.ErrNetwork, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("%w: read luma response: %v", domain.ErrNetwork, err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: luma rejected API key (status %d)", domain.ErrUnauthorized, resp.StatusCode)
		case resp.StatusCode >= 400:
			return fmt.Errorf("%w: luma returned status %d: %s",
				domain.ErrProvider, resp.StatusCode, apiErrorMessage(raw))
		}

		if err := json.Unmarshal(raw, &result); err != nil {
			return fmt.Errorf("%w: decode luma response: %v", domain.ErrProvider, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAllPages follows pagination cursors until exhaustion or the page
// bound, concatenating each page's entries.
func (c *Client) GetAllPages(ctx context.Context, path string, params url.Values) ([]any, error) {
	if params == nil {
		params = url.Values{}
	}
	var entries []any
	for page := 0; page < maxPages; page++ {
		data, err := c.Get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		if batch, ok := data["entries"].([]any); ok {
			entries = append(entries, batch...)
		}
		hasMore, _ := data["has_more"].(bool)
		cursor, _ := data["next_cursor"].(string)
		if !hasMore || cursor == "" {
			break
		}
		params.Set("pagination_cursor", cursor)
	}
	return entries, nil
}

// apiErrorMessage prefers the API's message field over the raw body.
func apiErrorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if len(raw) > 256 {
		raw = raw[:256]
	}
	return string(raw)
}
