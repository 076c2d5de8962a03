package services

import (
	"context"
	"fmt"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
)

// Registry maps platform identifiers to their providers. It is built once
// at startup and threaded through every call path; there is no process-wide
// singleton. The provider set is immutable after construction.
type Registry struct {
	providers map[domain.PlatformType]driving.Provider
	order     []domain.PlatformType
}

// NewRegistry creates a registry over the given providers, preserving
// registration order for enumeration.
func NewRegistry(providers ...driving.Provider) *Registry {
	r := &Registry{
		providers: make(map[domain.PlatformType]driving.Provider, len(providers)),
	}
	for _, p := range providers {
		if _, exists := r.providers[p.Platform()]; !exists {
			r.order = append(r.order, p.Platform())
		}
		r.providers[p.Platform()] = p
	}
	return r
}

// Resolve returns the provider for a platform.
func (r *Registry) Resolve(platform domain.PlatformType) (driving.Provider, error) {
	p, ok := r.providers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, platform)
	}
	return p, nil
}

// All returns the registered providers in registration order.
func (r *Registry) All() []driving.Provider {
	providers := make([]driving.Provider, 0, len(r.order))
	for _, platform := range r.order {
		providers = append(providers, r.providers[platform])
	}
	return providers
}

// AuthStatus reports the credential state for a platform. Pure query: it
// never triggers a refresh as a side effect.
func (r *Registry) AuthStatus(platform domain.PlatformType) (domain.AuthStatus, error) {
	p, err := r.Resolve(platform)
	if err != nil {
		return "", err
	}
	return p.AuthStatus(), nil
}

// Dispatch resolves the platform and executes one action request. The
// provider's capability check rejects unsupported actions before any
// network activity.
func (r *Registry) Dispatch(
	ctx context.Context,
	platform domain.PlatformType,
	req driving.ActionRequest,
) (map[string]any, error) {
	p, err := r.Resolve(platform)
	if err != nil {
		return nil, err
	}
	if !p.Supports(req.Action) {
		return nil, fmt.Errorf("%w: %s does not support %s",
			domain.ErrUnsupportedAction, platform, req.Action)
	}
	return p.Call(ctx, req)
}
