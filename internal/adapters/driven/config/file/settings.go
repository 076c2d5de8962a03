// Package file loads and saves eventdeck configuration from a TOML file,
// with EVENTDECK_* environment variables taking precedence. Configuration
// is read once at startup and immutable afterwards.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

// envPrefix is the prefix for all environment overrides.
const envPrefix = "EVENTDECK_"

// fileSchema is the on-disk TOML shape. Durations are plain seconds so the
// file stays hand-editable.
type fileSchema struct {
	Meetup struct {
		ClientID          string   `toml:"client_id"`
		ClientSecret      string   `toml:"client_secret"`
		GraphQLEndpoint   string   `toml:"graphql_endpoint"`
		AuthEndpoint      string   `toml:"auth_endpoint"`
		TokenEndpoint     string   `toml:"token_endpoint"`
		RedirectURI       string   `toml:"redirect_uri"`
		Scopes            []string `toml:"scopes"`
		ProNetworkURLName string   `toml:"pro_network_urlname"`
	} `toml:"meetup"`
	Luma struct {
		APIKey      string `toml:"api_key"`
		APIEndpoint string `toml:"api_endpoint"`
	} `toml:"luma"`
	Server struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	} `toml:"server"`
	TokenCacheDir        string `toml:"token_cache_dir"`
	TokenSkewSeconds     int    `toml:"token_skew_seconds"`
	LoginAttemptTTLSecs  int    `toml:"login_attempt_ttl_seconds"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".eventdeck", "config.toml")
}

// LoadSettings builds settings from defaults, the TOML file at path (if it
// exists), and finally environment overrides. A malformed file is an error;
// a missing one is not.
func LoadSettings(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: defaults plus environment.
	case err != nil:
		return settings, fmt.Errorf("read config %s: %w", path, err)
	default:
		var schema fileSchema
		if err := toml.Unmarshal(data, &schema); err != nil {
			return settings, fmt.Errorf("parse config %s: %w", path, err)
		}
		applySchema(&settings, &schema)
	}

	applyEnv(&settings)
	return settings, nil
}

func applySchema(s *domain.Settings, f *fileSchema) {
	setString(&s.Meetup.ClientID, f.Meetup.ClientID)
	setString(&s.Meetup.ClientSecret, f.Meetup.ClientSecret)
	setString(&s.Meetup.GraphQLEndpoint, f.Meetup.GraphQLEndpoint)
	setString(&s.Meetup.AuthEndpoint, f.Meetup.AuthEndpoint)
	setString(&s.Meetup.TokenEndpoint, f.Meetup.TokenEndpoint)
	setString(&s.Meetup.RedirectURI, f.Meetup.RedirectURI)
	if len(f.Meetup.Scopes) > 0 {
		s.Meetup.Scopes = f.Meetup.Scopes
	}
	setString(&s.Meetup.ProNetworkURLName, f.Meetup.ProNetworkURLName)

	setString(&s.Luma.APIKey, f.Luma.APIKey)
	setString(&s.Luma.APIEndpoint, f.Luma.APIEndpoint)

	setString(&s.Server.Host, f.Server.Host)
	if f.Server.Port != 0 {
		s.Server.Port = f.Server.Port
	}

	setString(&s.TokenCacheDir, f.TokenCacheDir)
	if f.TokenSkewSeconds > 0 {
		s.TokenSkew = time.Duration(f.TokenSkewSeconds) * time.Second
	}
	if f.LoginAttemptTTLSecs > 0 {
		s.LoginAttemptTTL = time.Duration(f.LoginAttemptTTLSecs) * time.Second
	}
}

func applyEnv(s *domain.Settings) {
	setEnvString(&s.Meetup.ClientID, "MEETUP_CLIENT_ID")
	setEnvString(&s.Meetup.ClientSecret, "MEETUP_CLIENT_SECRET")
	setEnvString(&s.Meetup.GraphQLEndpoint, "MEETUP_GRAPHQL_ENDPOINT")
	setEnvString(&s.Meetup.AuthEndpoint, "MEETUP_AUTH_ENDPOINT")
	setEnvString(&s.Meetup.TokenEndpoint, "MEETUP_TOKEN_ENDPOINT")
	setEnvString(&s.Meetup.RedirectURI, "MEETUP_REDIRECT_URI")
	setEnvString(&s.Meetup.ProNetworkURLName, "MEETUP_PRO_NETWORK_URLNAME")
	if v := os.Getenv(envPrefix + "MEETUP_SCOPES"); v != "" {
		s.Meetup.Scopes = strings.Split(v, ",")
	}

	setEnvString(&s.Luma.APIKey, "LUMA_API_KEY")
	setEnvString(&s.Luma.APIEndpoint, "LUMA_API_ENDPOINT")

	setEnvString(&s.Server.Host, "SERVER_HOST")
	if v := os.Getenv(envPrefix + "SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.Server.Port = port
		}
	}

	setEnvString(&s.TokenCacheDir, "TOKEN_CACHE_DIR")
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

// SaveCredentialConfig persists platform credentials (OAuth client id and
// secret, or API key) into the TOML file, creating it if needed. Other
// keys already in the file are preserved.
func SaveCredentialConfig(path string, update func(schema map[string]any)) error {
	raw := make(map[string]any)
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	update(raw)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Section returns the nested table for a platform, creating it if absent.
// Helper for SaveCredentialConfig update callbacks.
func Section(raw map[string]any, name string) map[string]any {
	if tbl, ok := raw[name].(map[string]any); ok {
		return tbl
	}
	tbl := make(map[string]any)
	raw[name] = tbl
	return tbl
}
