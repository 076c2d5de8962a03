// Package meetup implements the Meetup.com platform adapter: a GraphQL
// transport authenticated through the refreshing client wrapper, and a
// provider exposing Meetup operations behind the uniform action vocabulary.
package meetup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/services"
	"github.com/eventdeck-labs/eventdeck-cli/internal/logger"
)

const (
	// requestTimeout bounds a single GraphQL round trip.
	requestTimeout = 30 * time.Second

	// proactiveRate throttles outbound requests below Meetup's
	// 500-points-per-60s API quota.
	proactiveRate = 5.0

	maxResponseBytes = 4 << 20
)

// graphQLError is one entry of a GraphQL response errors array, also used
// for mutation payload errors.
type graphQLError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

func joinErrorMessages(errs []graphQLError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Client is the low-level GraphQL transport for Meetup. Every request goes
// through the refreshing client, which supplies a valid bearer token and
// handles the refresh-and-retry cycle on rejection.
type Client struct {
	endpoint string
	http     *http.Client
	auth     *services.RefreshingClient
	limiter  *rate.Limiter
}

// NewClient builds the transport. The refreshing client owns all credential
// handling; this type only speaks HTTP and GraphQL.
func NewClient(endpoint string, auth *services.RefreshingClient) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
		auth:     auth,
		limiter:  rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Execute runs one GraphQL query or mutation and returns the data object.
// A response errors array surfaces as ErrProvider; an HTTP 401/403 maps to
// ErrUnauthorized so the refreshing client can retry once with a fresh
// token.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload := map[string]any{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode graphql request: %w", err)
	}

	var data map[string]any
	err = c.auth.Call(ctx, func(ctx context.Context, accessToken string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build graphql request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%w: meetup request: %v", domain.ErrNetwork, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("%w: read meetup response: %v", domain.ErrNetwork, err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: meetup rejected token (status %d)", domain.ErrUnauthorized, resp.StatusCode)
		case resp.StatusCode >= 400:
			return fmt.Errorf("%w: meetup returned status %d: %s",
				domain.ErrProvider, resp.StatusCode, truncate(raw, 256))
		}

		var envelope struct {
			Data   map[string]any `json:"data"`
			Errors []graphQLError `json:"errors"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("%w: decode meetup response: %v", domain.ErrProvider, err)
		}
		if len(envelope.Errors) > 0 {
			return fmt.Errorf("%w: meetup graphql errors: %s",
				domain.ErrProvider, joinErrorMessages(envelope.Errors))
		}
		data = envelope.Data
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Debug().Str("platform", "meetup").Msg("graphql request completed")
	return data, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// mutationResult extracts the named payload from a mutation response and
// fails with ErrProvider when its errors array is populated. Meetup reports
// mutation validation failures in-band rather than as GraphQL errors.
func mutationResult(data map[string]any, key string) (map[string]any, error) {
	result, ok := data[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: meetup %s returned no payload", domain.ErrProvider, key)
	}
	rawErrs, ok := result["errors"].([]any)
	if !ok || len(rawErrs) == 0 {
		return result, nil
	}
	var msgs []string
	for _, raw := range rawErrs {
		if e, ok := raw.(map[string]any); ok {
			if m, ok := e["message"].(string); ok {
				msgs = append(msgs, m)
				continue
			}
		}
		msgs = append(msgs, fmt.Sprintf("%v", raw))
	}
	return nil, fmt.Errorf("%w: meetup %s failed: %s", domain.ErrProvider, key, strings.Join(msgs, "; "))
}
