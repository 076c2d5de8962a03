package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors.

	// ErrNotAuthenticated indicates no usable credential exists for the
	// platform. The caller must run login (or configure an API key).
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthState indicates an OAuth callback whose state token does not
	// match the pending authorization attempt (replay or forgery).
	ErrAuthState = errors.New("authorization state mismatch")

	// ErrAuthExchange indicates the authorization-code exchange was
	// rejected by the token endpoint. The login must be restarted.
	ErrAuthExchange = errors.New("authorization code exchange failed")

	// ErrAuthRefresh indicates the refresh token was rejected or revoked.
	// Terminal for the credential: re-authentication is required.
	ErrAuthRefresh = errors.New("token refresh failed")

	// ErrUnauthorized is the classification platform clients report when
	// the remote API rejects a locally-valid credential. It drives the
	// single refresh-and-retry cycle in the refreshing client.
	ErrUnauthorized = errors.New("credential rejected by platform")

	// Dispatch errors.

	// ErrUnknownPlatform indicates the platform is not registered.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrUnsupportedAction indicates the provider does not declare the
	// requested action in its capability set.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrNotConfigured indicates required configuration for the platform
	// (OAuth client credentials or API key) is absent.
	ErrNotConfigured = errors.New("platform not configured")

	// Transport errors.

	// ErrNetwork indicates a transient transport failure (timeout,
	// connection refused). Safe to retry; not an authorization problem.
	ErrNetwork = errors.New("network error")

	// ErrProvider indicates the platform API returned an
	// application-level error (GraphQL errors array, 4xx/5xx body).
	ErrProvider = errors.New("platform error")
)
