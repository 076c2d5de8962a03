package domain

import (
	"os"
	"path/filepath"
	"time"
)

// Settings is the application configuration, loaded once at startup and
// immutable afterwards.
type Settings struct {
	Meetup MeetupSettings
	Luma   LumaSettings
	Server ServerSettings

	// TokenCacheDir is where credential records are persisted,
	// one file per platform.
	TokenCacheDir string

	// TokenSkew is how long before true expiry a token is treated as
	// invalid, forcing proactive refresh.
	TokenSkew time.Duration

	// LoginAttemptTTL bounds how long a pending login may wait for its
	// callback before the attempt is discarded.
	LoginAttemptTTL time.Duration
}

// MeetupSettings holds the Meetup OAuth app and API configuration.
type MeetupSettings struct {
	ClientID        string
	ClientSecret    string
	GraphQLEndpoint string
	AuthEndpoint    string
	TokenEndpoint   string
	RedirectURI     string
	Scopes          []string
	// ProNetworkURLName is the default Pro network for network searches.
	ProNetworkURLName string
}

// Configured returns true if the OAuth app credentials are present.
func (s *MeetupSettings) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// LumaSettings holds the Luma API configuration.
type LumaSettings struct {
	APIKey      string
	APIEndpoint string
}

// Configured returns true if the static API key is present.
func (s *LumaSettings) Configured() bool {
	return s.APIKey != ""
}

// ServerSettings holds the callback/HTTP listener configuration.
type ServerSettings struct {
	Host string
	Port int
}

// DefaultSettings returns the baseline configuration before any file or
// environment overrides are applied.
func DefaultSettings() Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Settings{
		Meetup: MeetupSettings{
			GraphQLEndpoint: "https://api.meetup.com/gql-ext",
			AuthEndpoint:    "https://secure.meetup.com/oauth2/authorize",
			TokenEndpoint:   "https://secure.meetup.com/oauth2/access",
			RedirectURI:     "http://127.0.0.1:8080/auth/meetup/callback",
		},
		Luma: LumaSettings{
			APIEndpoint: "https://public-api.luma.com/v1",
		},
		Server: ServerSettings{
			Host: "127.0.0.1",
			Port: 8080,
		},
		TokenCacheDir:   filepath.Join(home, ".eventdeck", "tokens"),
		TokenSkew:       60 * time.Second,
		LoginAttemptTTL: 10 * time.Minute,
	}
}
