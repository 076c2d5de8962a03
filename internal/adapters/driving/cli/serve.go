package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driving/callback"
	"github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driving/mcp"
	"github.com/eventdeck-labs/eventdeck-cli/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants. The OAuth
callback listener starts alongside it so browser logins complete without a
separate process.

Use --port to serve MCP over HTTP instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  eventdeck serve

  # HTTP mode (for MCP Inspector, remote access)
  eventdeck serve --port 9090

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "eventdeck": {
        "command": "/path/to/eventdeck",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "MCP HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	cb := callback.NewServer(settings.Server.Host, settings.Server.Port, flows)
	if err := cb.Start(); err != nil {
		return fmt.Errorf("starting callback server: %w", err)
	}
	defer func() {
		if err := cb.Stop(); err != nil {
			logger.Get().Warn().Err(err).Msg("callback server shutdown")
		}
	}()

	server, err := mcp.NewServer(&mcp.Ports{
		Registry: registry,
		Flows:    flows,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
