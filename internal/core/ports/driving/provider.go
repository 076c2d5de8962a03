package driving

import (
	"context"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

// ActionRequest is the uniform request shape dispatched to a provider.
// The concrete argument/response schemas belong to each platform's client
// module; the core only routes and capability-checks.
type ActionRequest struct {
	// Action selects the operation from the fixed vocabulary.
	Action domain.Action
	// Kind is the entity kind the action targets (events, groups,
	// group-members, network-events, self, venue, ...).
	Kind string
	// ID is the target identifier for edit, mutate-state and
	// read-resource actions.
	ID string
	// Verb is the state transition for mutate-state actions
	// (delete, publish, announce, cancel, close_rsvps, open_rsvps).
	Verb string
	// Params carries action arguments and filters.
	Params map[string]any
}

// Provider is one platform's adapter behind the uniform action vocabulary.
// Auth-scheme differences (OAuth2 vs static key) live entirely inside each
// implementation's refreshing client; they never leak to callers.
type Provider interface {
	// Platform returns the platform identifier.
	Platform() domain.PlatformType

	// Capabilities returns the static capability descriptor.
	Capabilities() domain.ActionSet

	// Supports is a pure function over the static descriptor.
	Supports(action domain.Action) bool

	// AuthStatus derives the credential state without side effects:
	// a status query never triggers a refresh.
	AuthStatus() domain.AuthStatus

	// Call executes one action. Unsupported actions fail with
	// ErrUnsupportedAction before any network activity; missing
	// configuration fails with ErrNotConfigured.
	Call(ctx context.Context, req ActionRequest) (map[string]any, error)
}
