package mcp

import (
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/services"
)

// Ports aggregates everything the MCP server needs. A single injection
// point keeps wiring in one place.
type Ports struct {
	// Registry resolves platforms and dispatches action requests.
	Registry *services.Registry

	// Flows holds the login flows for OAuth platforms, keyed by
	// platform. Static-key platforms have no flow.
	Flows map[domain.PlatformType]driving.AuthFlow
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Registry == nil {
		return ErrMissingRegistry
	}
	return nil
}
