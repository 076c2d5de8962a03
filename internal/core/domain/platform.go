package domain

// PlatformType identifies a supported event platform.
type PlatformType string

const (
	// PlatformMeetup is Meetup.com (GraphQL API, OAuth2 authorization-code).
	PlatformMeetup PlatformType = "meetup"
	// PlatformLuma is Luma (REST API, static API key).
	PlatformLuma PlatformType = "luma"
)

// AuthMethod defines how a platform authenticates.
type AuthMethod string

const (
	// AuthMethodOAuth uses the OAuth2 authorization-code grant with refresh.
	AuthMethodOAuth AuthMethod = "oauth"
	// AuthMethodAPIKey uses a static, non-expiring API key.
	AuthMethodAPIKey AuthMethod = "apikey"
)
