package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
)

// fakeProvider records whether Call was reached.
type fakeProvider struct {
	platform domain.PlatformType
	caps     domain.ActionSet
	status   domain.AuthStatus
	called   int
	result   map[string]any
	err      error
}

func (p *fakeProvider) Platform() domain.PlatformType     { return p.platform }
func (p *fakeProvider) Capabilities() domain.ActionSet    { return p.caps }
func (p *fakeProvider) Supports(a domain.Action) bool     { return p.caps.Has(a) }
func (p *fakeProvider) AuthStatus() domain.AuthStatus     { return p.status }
func (p *fakeProvider) Call(_ context.Context, _ driving.ActionRequest) (map[string]any, error) {
	p.called++
	return p.result, p.err
}

func TestRegistry_Resolve_UnknownPlatform(t *testing.T) {
	registry := NewRegistry(&fakeProvider{platform: domain.PlatformMeetup})

	_, err := registry.Resolve("eventbrite")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
}

func TestRegistry_All_PreservesOrder(t *testing.T) {
	registry := NewRegistry(
		&fakeProvider{platform: domain.PlatformMeetup},
		&fakeProvider{platform: domain.PlatformLuma},
	)

	providers := registry.All()
	require.Len(t, providers, 2)
	assert.Equal(t, domain.PlatformMeetup, providers[0].Platform())
	assert.Equal(t, domain.PlatformLuma, providers[1].Platform())
}

func TestRegistry_Dispatch_UnsupportedAction(t *testing.T) {
	provider := &fakeProvider{
		platform: domain.PlatformLuma,
		caps:     domain.NewActionSet(domain.ActionSearch),
	}
	registry := NewRegistry(provider)

	_, err := registry.Dispatch(context.Background(), domain.PlatformLuma, driving.ActionRequest{
		Action: domain.ActionCreateSubResource,
		Kind:   "venue",
	})

	// Capability rejection happens before the provider is invoked.
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedAction)
	assert.Zero(t, provider.called)
}

func TestRegistry_Dispatch_RoutesToProvider(t *testing.T) {
	provider := &fakeProvider{
		platform: domain.PlatformMeetup,
		caps:     domain.NewActionSet(domain.ActionSearch),
		result:   map[string]any{"totalCount": float64(3)},
	}
	registry := NewRegistry(provider)

	result, err := registry.Dispatch(context.Background(), domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "events",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, provider.called)
	assert.Equal(t, float64(3), result["totalCount"])
}

func TestRegistry_AuthStatus(t *testing.T) {
	registry := NewRegistry(&fakeProvider{
		platform: domain.PlatformMeetup,
		status:   domain.AuthStatusExpired,
	})

	status, err := registry.AuthStatus(domain.PlatformMeetup)
	require.NoError(t, err)
	assert.Equal(t, domain.AuthStatusExpired, status)

	_, err = registry.AuthStatus("eventbrite")
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
}

func TestDeriveAuthStatus(t *testing.T) {
	store := memory.NewTokenStore()

	assert.Equal(t, domain.AuthStatusUnconfigured,
		DeriveAuthStatus(false, store, domain.PlatformMeetup))
	assert.Equal(t, domain.AuthStatusUnauthenticated,
		DeriveAuthStatus(true, store, domain.PlatformMeetup))

	require.NoError(t, store.Put(domain.PlatformMeetup, validRecord()))
	assert.Equal(t, domain.AuthStatusAuthenticated,
		DeriveAuthStatus(true, store, domain.PlatformMeetup))

	require.NoError(t, store.Put(domain.PlatformMeetup, expiredRecord()))
	assert.Equal(t, domain.AuthStatusExpired,
		DeriveAuthStatus(true, store, domain.PlatformMeetup))
}
