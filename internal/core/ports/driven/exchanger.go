package driven

import (
	"context"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

// CodeExchanger talks to one platform's OAuth2 authorization server. It is
// the only place the flow engine touches the network. Implementations
// classify failures into the domain taxonomy: rejected exchanges map to
// ErrAuthExchange / ErrAuthRefresh, transport failures to ErrNetwork.
type CodeExchanger interface {
	// AuthCodeURL builds the authorization URL embedding the given
	// anti-forgery state token, the redirect URI, and requested scopes.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges an authorization code for tokens.
	// The returned record has no platform set; the caller assigns it.
	ExchangeCode(ctx context.Context, code string) (*domain.CredentialRecord, error)

	// Refresh exchanges a refresh token for a new access token. The
	// returned record's RefreshToken is empty unless the authorization
	// server rotated it.
	Refresh(ctx context.Context, refreshToken string) (*domain.CredentialRecord, error)
}
