package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
	"github.com/eventdeck-labs/eventdeck-cli/internal/logger"
)

// Ensure FlowEngine implements the driving port.
var _ driving.AuthFlow = (*FlowEngine)(nil)

// FlowEngine drives the OAuth2 authorization-code grant for one platform:
// it issues authorization URLs, consumes callbacks, and refreshes access
// tokens. One pending authorization attempt exists at a time; starting a
// new login supersedes the previous one.
type FlowEngine struct {
	platform   domain.PlatformType
	exchanger  driven.CodeExchanger
	store      driven.TokenStore
	attemptTTL time.Duration
	skew       time.Duration

	mu      sync.Mutex
	pending *domain.AuthorizationAttempt

	// refreshGroup collapses concurrent refreshes into one exchange so a
	// single-use refresh token is never presented twice. Correctness
	// requirement, not an optimization.
	refreshGroup singleflight.Group
}

// NewFlowEngine creates a flow engine for a platform. attemptTTL bounds how
// long a login may wait for its callback; skew is the proactive-refresh
// window shared with the refreshing client.
func NewFlowEngine(
	platform domain.PlatformType,
	exchanger driven.CodeExchanger,
	store driven.TokenStore,
	attemptTTL time.Duration,
	skew time.Duration,
) *FlowEngine {
	return &FlowEngine{
		platform:   platform,
		exchanger:  exchanger,
		store:      store,
		attemptTTL: attemptTTL,
		skew:       skew,
	}
}

// Platform returns the platform this engine authenticates.
func (e *FlowEngine) Platform() domain.PlatformType {
	return e.platform
}

// StartLogin generates a fresh authorization attempt and returns the URL to
// open in a browser. Any prior pending attempt becomes invalid.
func (e *FlowEngine) StartLogin() (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("generate state token: %w", err)
	}

	now := time.Now()
	attempt := &domain.AuthorizationAttempt{
		ID:        uuid.NewString(),
		Platform:  e.platform,
		State:     state,
		CreatedAt: now,
		ExpiresAt: now.Add(e.attemptTTL),
	}

	e.mu.Lock()
	if e.pending != nil {
		logger.Get().Debug().
			Str("platform", string(e.platform)).
			Str("attempt", e.pending.ID).
			Msg("superseding pending login attempt")
	}
	e.pending = attempt
	e.mu.Unlock()

	return e.exchanger.AuthCodeURL(state), nil
}

// HandleCallback consumes the callback for the pending attempt. On a state
// match the code is exchanged for tokens and the resulting record stored;
// the attempt is discarded whether the exchange succeeds or not. A state
// mismatch leaves the pending attempt (and any stored credential) intact.
func (e *FlowEngine) HandleCallback(ctx context.Context, code, state string) error {
	e.mu.Lock()
	attempt := e.pending
	if attempt == nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: no login pending for %s", domain.ErrAuthState, e.platform)
	}
	if attempt.Expired(time.Now()) {
		e.pending = nil
		e.mu.Unlock()
		return fmt.Errorf("%w: login attempt for %s expired, restart login",
			domain.ErrAuthState, e.platform)
	}
	if subtle.ConstantTimeCompare([]byte(state), []byte(attempt.State)) != 1 {
		e.mu.Unlock()
		return fmt.Errorf("%w: callback state does not match pending attempt for %s",
			domain.ErrAuthState, e.platform)
	}
	// State token is single-use: consume the attempt before any network
	// call so a concurrent replay of the same callback is rejected.
	e.pending = nil
	e.mu.Unlock()

	rec, err := e.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}
	rec.Platform = e.platform

	if err := e.store.Put(e.platform, *rec); err != nil {
		// Non-fatal: the record is authoritative in memory and the
		// write is retried on the next mutation.
		logger.Get().Warn().Err(err).
			Str("platform", string(e.platform)).
			Msg("credential persisted in memory only")
	}

	logger.Get().Info().
		Str("platform", string(e.platform)).
		Msg("login complete, credential stored")
	return nil
}

// Refresh exchanges the stored refresh token for a new access token and
// persists the result. At most one exchange is in flight per platform;
// concurrent callers block on it and share its outcome. A rejected refresh
// token clears the record: re-authentication is required.
func (e *FlowEngine) Refresh(ctx context.Context) (*domain.CredentialRecord, error) {
	v, err, _ := e.refreshGroup.Do(string(e.platform), func() (any, error) {
		rec, ok := e.store.Get(e.platform)
		if !ok {
			return nil, fmt.Errorf("%w: no credential for %s",
				domain.ErrNotAuthenticated, e.platform)
		}
		// A waiter that queued behind a completed refresh sees the
		// fresh record here and skips a second exchange.
		if rec.Valid(e.skew) {
			return rec, nil
		}
		if !rec.HasRefreshToken() {
			return nil, fmt.Errorf("%w: credential for %s has no refresh token",
				domain.ErrNotAuthenticated, e.platform)
		}

		fresh, err := e.exchanger.Refresh(ctx, rec.RefreshToken)
		if err != nil {
			if errors.Is(err, domain.ErrAuthRefresh) {
				// Revoked or expired refresh token: terminal for
				// this credential until the user logs in again.
				if cerr := e.store.Clear(e.platform); cerr != nil {
					logger.Get().Warn().Err(cerr).
						Str("platform", string(e.platform)).
						Msg("clearing credential after failed refresh")
				}
			}
			return nil, err
		}

		fresh.Platform = e.platform
		if fresh.RefreshToken == "" {
			// The server did not rotate the refresh token; keep ours.
			fresh.RefreshToken = rec.RefreshToken
		}
		if fresh.Scopes == nil {
			fresh.Scopes = rec.Scopes
		}

		if perr := e.store.Put(e.platform, *fresh); perr != nil {
			logger.Get().Warn().Err(perr).
				Str("platform", string(e.platform)).
				Msg("refreshed credential persisted in memory only")
		}

		logger.Get().Debug().
			Str("platform", string(e.platform)).
			Time("expires_at", fresh.ExpiresAt).
			Msg("access token refreshed")
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CredentialRecord), nil
}

// PendingAttempt returns a copy of the current pending attempt, if any.
// Used by status displays; the zero return means no login is in progress.
func (e *FlowEngine) PendingAttempt() (domain.AuthorizationAttempt, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return domain.AuthorizationAttempt{}, false
	}
	return *e.pending, true
}
