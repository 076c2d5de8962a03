package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
)

// registerResources registers the read-only URI lookups with the MCP
// server. Each resource resolves to one read-resource action.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         "meetup://self",
		Name:        "meetup-self",
		Description: "Authenticated Meetup user profile (id, name, group count)",
		MIMEType:    "application/json",
	}, s.readHandler(domain.PlatformMeetup, "self"))

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "meetup://group/{urlname}",
		Name:        "meetup-group",
		Description: "Meetup group details by URL name",
		MIMEType:    "application/json",
	}, s.readHandler(domain.PlatformMeetup, "group"))

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "meetup://event/{eventId}",
		Name:        "meetup-event",
		Description: "Meetup event details by event ID",
		MIMEType:    "application/json",
	}, s.readHandler(domain.PlatformMeetup, "event"))

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "meetup://network/{urlname}",
		Name:        "meetup-network",
		Description: "Meetup Pro network info (name, description, status, link)",
		MIMEType:    "application/json",
	}, s.readHandler(domain.PlatformMeetup, "network"))

	s.server.AddResource(&mcp.Resource{
		URI:         "luma://self",
		Name:        "luma-self",
		Description: "Authenticated Luma user profile",
		MIMEType:    "application/json",
	}, s.readHandler(domain.PlatformLuma, "self"))

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "luma://event/{eventId}",
		Name:        "luma-event",
		Description: "Luma event details by API ID",
		MIMEType:    "application/json",
	}, s.readHandler(domain.PlatformLuma, "event"))
}

// readHandler builds a resource handler dispatching a read-resource action.
// The entity ID is the URI path remainder after the kind segment.
func (s *Server) readHandler(platform domain.PlatformType, kind string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		id, err := resourceID(req.Params.URI, string(platform), kind)
		if err != nil {
			return nil, err
		}

		data, err := s.ports.Registry.Dispatch(ctx, platform, driving.ActionRequest{
			Action: domain.ActionReadResource,
			Kind:   kind,
			ID:     id,
		})
		if err != nil {
			return nil, err
		}

		text, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding resource: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(text),
			}},
		}, nil
	}
}

// resourceID extracts the entity identifier from a resource URI.
// "meetup://group/my-group" with kind "group" yields "my-group"; kinds
// without an identifier (self) yield "".
func resourceID(uri, scheme, kind string) (string, error) {
	prefix := scheme + "://"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: resource URI %q", domain.ErrInvalidInput, uri)
	}
	rest := strings.TrimPrefix(uri, prefix)
	if rest == kind {
		return "", nil
	}
	id := strings.TrimPrefix(rest, kind+"/")
	if id == rest || id == "" {
		return "", fmt.Errorf("%w: resource URI %q", domain.ErrInvalidInput, uri)
	}
	return id, nil
}
