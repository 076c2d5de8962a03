// Package oauth implements the token-endpoint exchanges for OAuth2
// platforms on top of golang.org/x/oauth2.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
)

// exchangeTimeout bounds every token-endpoint round trip.
const exchangeTimeout = 30 * time.Second

// Ensure Exchanger implements the driven port.
var _ driven.CodeExchanger = (*Exchanger)(nil)

// Exchanger performs the authorization-code and refresh-token exchanges
// against one platform's OAuth2 endpoints.
type Exchanger struct {
	cfg    *oauth2.Config
	client *http.Client
}

// NewExchanger builds an exchanger from the platform's OAuth app settings.
func NewExchanger(clientID, clientSecret, authURL, tokenURL, redirectURI string, scopes []string) *Exchanger {
	return &Exchanger{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		client: &http.Client{Timeout: exchangeTimeout},
	}
}

// AuthCodeURL builds the authorization URL embedding the state token.
func (e *Exchanger) AuthCodeURL(state string) string {
	return e.cfg.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for tokens.
func (e *Exchanger) ExchangeCode(ctx context.Context, code string) (*domain.CredentialRecord, error) {
	tok, err := e.cfg.Exchange(e.httpCtx(ctx), code)
	if err != nil {
		return nil, classify(err, domain.ErrAuthExchange)
	}
	return e.record(tok, ""), nil
}

// Refresh exchanges a refresh token for a new access token. The returned
// record's RefreshToken is empty unless the server rotated it.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (*domain.CredentialRecord, error) {
	src := e.cfg.TokenSource(e.httpCtx(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, classify(err, domain.ErrAuthRefresh)
	}
	return e.record(tok, refreshToken), nil
}

// httpCtx pins the bounded HTTP client onto the context for oauth2.
func (e *Exchanger) httpCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, e.client)
}

func (e *Exchanger) record(tok *oauth2.Token, priorRefreshToken string) *domain.CredentialRecord {
	refresh := tok.RefreshToken
	if refresh == priorRefreshToken {
		refresh = ""
	}
	return &domain.CredentialRecord{
		AccessToken:  tok.AccessToken,
		RefreshToken: refresh,
		ExpiresAt:    tok.Expiry,
		Scopes:       e.cfg.Scopes,
		ObtainedAt:   time.Now(),
	}
}

// classify maps transport errors to the domain taxonomy: a token-endpoint
// rejection becomes the given auth error, anything else is transient.
func classify(err error, authErr error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: token endpoint returned %s: %s",
			authErr, retrieveErr.Response.Status, string(retrieveErr.Body))
	}
	return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
}
