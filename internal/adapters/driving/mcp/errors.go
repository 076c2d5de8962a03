// Package mcp provides the MCP (Model Context Protocol) server adapter for
// eventdeck. It exposes the configured event platforms as tools and
// resources for AI assistants.
package mcp

import "errors"

// ErrMissingRegistry is returned when the provider registry is not provided.
var ErrMissingRegistry = errors.New("mcp: provider registry is required")
