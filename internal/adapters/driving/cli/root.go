// Package cli implements the eventdeck command-line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driven/config/file"
	"github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driven/oauth"
	storagefile "github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driven/storage/file"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/services"
	"github.com/eventdeck-labs/eventdeck-cli/internal/logger"
	"github.com/eventdeck-labs/eventdeck-cli/internal/platforms/luma"
	"github.com/eventdeck-labs/eventdeck-cli/internal/platforms/meetup"
)

const version = "0.1.0"

// Wired application state, shared by the subcommands.
var (
	settings   domain.Settings
	tokenStore driven.TokenStore
	registry   *services.Registry
	flows      map[domain.PlatformType]driving.AuthFlow
)

// Flags.
var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "eventdeck",
	Short: "MCP server for event platforms (Meetup, Luma)",
	Long: `eventdeck exposes event platforms to AI assistants over the Model
Context Protocol. It manages OAuth2 and API-key credentials, refreshes
tokens transparently, and dispatches tool calls to the right platform.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetLevel(logLevel)
		return initApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", configfile.DefaultPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initApp loads settings and wires the token store, flow engines and
// provider registry. Everything downstream receives its dependencies
// explicitly; there are no process-wide singletons beyond this package's
// command state.
func initApp() error {
	var err error
	settings, err = configfile.LoadSettings(configPath)
	if err != nil {
		return err
	}

	tokenStore, err = storagefile.NewTokenStore(settings.TokenCacheDir)
	if err != nil {
		return fmt.Errorf("opening token store: %w", err)
	}

	seedLumaKey()

	flows = make(map[domain.PlatformType]driving.AuthFlow)
	var meetupRefresher services.Refresher
	if settings.Meetup.Configured() {
		exchanger := oauth.NewExchanger(
			settings.Meetup.ClientID,
			settings.Meetup.ClientSecret,
			settings.Meetup.AuthEndpoint,
			settings.Meetup.TokenEndpoint,
			settings.Meetup.RedirectURI,
			settings.Meetup.Scopes,
		)
		flow := services.NewFlowEngine(
			domain.PlatformMeetup,
			exchanger,
			tokenStore,
			settings.LoginAttemptTTL,
			settings.TokenSkew,
		)
		flows[domain.PlatformMeetup] = flow
		meetupRefresher = flow
	}

	meetupClient := meetup.NewClient(
		settings.Meetup.GraphQLEndpoint,
		services.NewRefreshingClient(domain.PlatformMeetup, tokenStore, meetupRefresher, settings.TokenSkew),
	)
	lumaClient := luma.NewClient(
		settings.Luma.APIEndpoint,
		services.NewRefreshingClient(domain.PlatformLuma, tokenStore, nil, settings.TokenSkew),
	)

	registry = services.NewRegistry(
		meetup.NewProvider(meetupClient, tokenStore, settings.Meetup),
		luma.NewProvider(lumaClient, tokenStore, settings.Luma),
	)
	return nil
}

// seedLumaKey materializes the configured Luma API key as a non-expiring
// credential so the refreshing client treats both auth schemes uniformly.
func seedLumaKey() {
	if !settings.Luma.Configured() {
		return
	}
	if rec, ok := tokenStore.Get(domain.PlatformLuma); ok && rec.AccessToken == settings.Luma.APIKey {
		return
	}
	err := tokenStore.Put(domain.PlatformLuma, domain.CredentialRecord{
		Platform:    domain.PlatformLuma,
		AccessToken: settings.Luma.APIKey,
		ObtainedAt:  time.Now(),
	})
	if err != nil {
		logger.Get().Warn().Err(err).Msg("could not persist luma API key credential")
	}
}
