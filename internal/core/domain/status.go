package domain

// AuthStatus describes a platform's credential state as seen by callers.
// The four values route to different remediation steps: configure
// credentials, run login, or re-run login.
type AuthStatus string

const (
	// AuthStatusUnconfigured means no OAuth app or API key is configured.
	AuthStatusUnconfigured AuthStatus = "unconfigured"
	// AuthStatusUnauthenticated means configured but never logged in.
	AuthStatusUnauthenticated AuthStatus = "unauthenticated"
	// AuthStatusAuthenticated means a currently valid credential exists.
	AuthStatusAuthenticated AuthStatus = "authenticated"
	// AuthStatusExpired means a credential exists but has expired.
	AuthStatusExpired AuthStatus = "expired"
)
