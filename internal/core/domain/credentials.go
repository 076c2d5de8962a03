package domain

import "time"

// CredentialRecord is the persisted authentication state for one platform.
// Each platform has at most one record, owned exclusively by the token store.
type CredentialRecord struct {
	// Platform is the owning platform.
	Platform PlatformType `json:"platform"`
	// AccessToken is the bearer token (or static API key) for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	// Empty for static-key platforms.
	RefreshToken string `json:"refresh_token,omitempty"`
	// ExpiresAt is when the access token expires.
	// Zero means the token does not expire (static key).
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	// Scopes are the granted permission scopes, informational only.
	Scopes []string `json:"scopes,omitempty"`
	// ObtainedAt is when the record was created or last refreshed.
	ObtainedAt time.Time `json:"obtained_at"`
}

// Expires returns true if the record carries an expiry at all.
func (r *CredentialRecord) Expires() bool {
	return !r.ExpiresAt.IsZero()
}

// Valid reports whether the access token is usable. With a non-zero skew,
// tokens within skew of their expiry are treated as already invalid so
// callers refresh proactively rather than race the deadline.
func (r *CredentialRecord) Valid(skew time.Duration) bool {
	if r.AccessToken == "" {
		return false
	}
	if r.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().Add(skew).Before(r.ExpiresAt)
}

// HasRefreshToken returns true if the record can be refreshed.
func (r *CredentialRecord) HasRefreshToken() bool {
	return r.RefreshToken != ""
}

// Terminal reports whether the record can never self-heal: it has expired
// and there is no refresh token to exchange. The only way out is a full
// re-login (or re-configuration for static keys).
func (r *CredentialRecord) Terminal() bool {
	return !r.Valid(0) && !r.HasRefreshToken()
}
