package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
	"github.com/eventdeck-labs/eventdeck-cli/internal/logger"
)

// APICall is one outbound platform request, parameterized by the access
// token to present. Implementations report a rejected credential by
// returning an error wrapping domain.ErrUnauthorized.
type APICall func(ctx context.Context, accessToken string) error

// Refresher obtains a new credential record when the current one is stale.
// The FlowEngine implements this for OAuth platforms.
type Refresher interface {
	Refresh(ctx context.Context) (*domain.CredentialRecord, error)
}

// RefreshingClient wraps every outbound platform call with the credential
// protocol: ensure a usable token, refresh proactively within the skew
// window, and on a server-side rejection perform exactly one
// refresh-and-retry cycle. It guarantees at most one refresh attempt and
// at most one retried call per invocation.
type RefreshingClient struct {
	platform  domain.PlatformType
	store     driven.TokenStore
	refresher Refresher // nil for static-key platforms
	skew      time.Duration
}

// NewRefreshingClient creates the wrapper for one platform. Pass a nil
// refresher for static-key platforms: their credentials never refresh, so
// any rejection surfaces directly.
func NewRefreshingClient(
	platform domain.PlatformType,
	store driven.TokenStore,
	refresher Refresher,
	skew time.Duration,
) *RefreshingClient {
	return &RefreshingClient{
		platform:  platform,
		store:     store,
		refresher: refresher,
		skew:      skew,
	}
}

// Call runs one platform request with a valid access token.
func (c *RefreshingClient) Call(ctx context.Context, do APICall) error {
	rec, ok := c.store.Get(c.platform)
	if !ok {
		return fmt.Errorf("%w: no credential for %s", domain.ErrNotAuthenticated, c.platform)
	}

	if !rec.Valid(c.skew) {
		if c.refresher == nil || !rec.HasRefreshToken() {
			// Terminal: an expired record without a refresh token
			// cannot self-heal. No network call is attempted.
			return fmt.Errorf("%w: credential for %s expired and cannot be refreshed, log in again",
				domain.ErrNotAuthenticated, c.platform)
		}
		fresh, err := c.refresher.Refresh(ctx)
		if err != nil {
			return err
		}
		rec = fresh
	}

	err := do(ctx, rec.AccessToken)
	if err == nil || !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}

	// The platform rejected a locally-valid token (clock skew or
	// server-side revocation). One refresh-and-retry cycle, then give up.
	if c.refresher == nil || !rec.HasRefreshToken() {
		return err
	}
	logger.Get().Debug().
		Str("platform", string(c.platform)).
		Msg("token rejected by platform, refreshing and retrying once")
	fresh, rerr := c.refresher.Refresh(ctx)
	if rerr != nil {
		return rerr
	}
	return do(ctx, fresh.AccessToken)
}
