package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driven/config/file"
	"github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driving/callback"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

// loginTimeout bounds how long `auth login` waits for the browser callback.
const loginTimeout = 2 * time.Minute

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage platform credentials",
	Long: `Log in to event platforms, inspect credential state, and configure
OAuth apps and API keys.

Meetup uses OAuth2: 'auth login meetup' opens a browser authorization and
waits for the callback. Luma uses a static API key set via 'auth configure
luma'; no login step is needed.

Examples:
  eventdeck auth configure meetup   # set OAuth client credentials
  eventdeck auth login meetup       # browser login
  eventdeck auth status             # credential state per platform
  eventdeck auth logout meetup      # discard cached tokens`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [platform]",
	Short: "Start a browser login for an OAuth platform",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show credential state for each platform",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout [platform]",
	Short: "Discard cached credentials for a platform",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthLogout,
}

var authConfigureCmd = &cobra.Command{
	Use:   "configure [platform]",
	Short: "Store platform credentials in the config file",
	Long: `Interactively store platform credentials.

For meetup this asks for the OAuth client ID and secret of your Meetup
OAuth app. For luma it asks for the calendar API key. Secrets are read
without echo and written to the config file with 0600 permissions.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthConfigure,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authConfigureCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	platform := domain.PlatformType(args[0])
	flow, ok := flows[platform]
	if !ok {
		if platform == domain.PlatformLuma {
			return errors.New("luma uses a static API key; run 'eventdeck auth configure luma'")
		}
		return fmt.Errorf("%w: no login flow for %q (is it configured?)", domain.ErrNotConfigured, platform)
	}

	cb := callback.NewServer(settings.Server.Host, settings.Server.Port, flows)
	if err := cb.Start(); err != nil {
		return fmt.Errorf("starting callback server: %w", err)
	}
	defer cb.Stop() //nolint:errcheck

	url, err := flow.StartLogin()
	if err != nil {
		return err
	}

	cmd.Println("Open this URL in your browser to authorize:")
	cmd.Println()
	cmd.Println("  " + url)
	cmd.Println()
	cmd.Println("Waiting for the callback...")

	// Poll the store until the callback lands or the attempt times out.
	deadline := time.Now().Add(loginTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(time.Second)
		if rec, ok := tokenStore.Get(platform); ok && rec.Valid(0) {
			cmd.Printf("Logged in to %s.\n", platform)
			return nil
		}
	}
	return fmt.Errorf("login timed out after %s, try again", loginTimeout)
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	cmd.Println("Platform credentials")
	cmd.Println("====================")
	for _, p := range registry.All() {
		status := p.AuthStatus()
		line := fmt.Sprintf("  %-8s %s", p.Platform(), status)
		if rec, ok := tokenStore.Get(p.Platform()); ok && rec.Expires() {
			line += fmt.Sprintf(" (expires %s)", rec.ExpiresAt.Format(time.RFC3339))
		}
		cmd.Println(line)
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	platform := domain.PlatformType(args[0])
	if _, err := registry.Resolve(platform); err != nil {
		return err
	}
	if err := tokenStore.Clear(platform); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	cmd.Printf("Cleared credentials for %s.\n", platform)
	return nil
}

func runAuthConfigure(cmd *cobra.Command, args []string) error {
	platform := domain.PlatformType(args[0])
	switch platform {
	case domain.PlatformMeetup:
		clientID, err := promptLine(cmd, "Meetup OAuth client ID: ")
		if err != nil {
			return err
		}
		clientSecret, err := promptSecret(cmd, "Meetup OAuth client secret: ")
		if err != nil {
			return err
		}
		err = configfile.SaveCredentialConfig(configPath, func(raw map[string]any) {
			section := configfile.Section(raw, "meetup")
			section["client_id"] = clientID
			section["client_secret"] = clientSecret
		})
		if err != nil {
			return err
		}
	case domain.PlatformLuma:
		apiKey, err := promptSecret(cmd, "Luma API key: ")
		if err != nil {
			return err
		}
		err = configfile.SaveCredentialConfig(configPath, func(raw map[string]any) {
			section := configfile.Section(raw, "luma")
			section["api_key"] = apiKey
		})
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, platform)
	}

	cmd.Printf("Saved %s credentials to %s.\n", platform, configPath)
	return nil
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// Piped input (tests, scripts).
		return promptLine(cmd, "")
	}
	secret, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
