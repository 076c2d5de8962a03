// Package driving defines the inbound ports: the interfaces through which
// transports (MCP tools, CLI, the OAuth callback route) drive the core.
package driving
