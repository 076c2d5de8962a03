package domain

import "time"

// AuthorizationAttempt tracks one in-progress OAuth2 login. At most one
// attempt may be pending per platform; starting a new login supersedes any
// prior attempt. The state token is single-use.
type AuthorizationAttempt struct {
	// ID uniquely identifies the attempt.
	ID string
	// Platform is the platform being logged into.
	Platform PlatformType
	// State is the random anti-forgery token embedded in the
	// authorization URL and echoed back by the callback.
	State string
	// CreatedAt is when the login was started.
	CreatedAt time.Time
	// ExpiresAt is when an unconsumed attempt becomes invalid.
	ExpiresAt time.Time
}

// Expired returns true if the attempt's TTL has passed.
func (a *AuthorizationAttempt) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}
