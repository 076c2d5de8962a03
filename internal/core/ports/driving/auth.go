package driving

import (
	"context"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

// AuthFlow drives one platform's OAuth2 authorization-code state machine.
// The transport layer merely forwards the callback's (code, state) pair and
// returns the result; all transitions happen here.
type AuthFlow interface {
	// Platform returns the platform this flow authenticates.
	Platform() domain.PlatformType

	// StartLogin begins a new authorization attempt and returns the URL
	// the user must open. Any prior pending attempt is superseded.
	StartLogin() (string, error)

	// HandleCallback consumes the callback for the pending attempt.
	// A state mismatch fails with ErrAuthState; a rejected exchange
	// fails with ErrAuthExchange and discards the attempt.
	HandleCallback(ctx context.Context, code, state string) error

	// Refresh exchanges the stored refresh token for a new access token
	// and persists the result. Callers concurrently needing a refresh
	// share a single in-flight exchange.
	Refresh(ctx context.Context) (*domain.CredentialRecord, error)
}
