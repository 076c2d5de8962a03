package domain

import (
	"fmt"
	"strings"
)

// Action is one operation in the fixed vocabulary providers can support.
// This is a bitfield so capability sets can be composed with |.
type Action uint8

const (
	// ActionSearch queries events, groups, or people on the platform.
	ActionSearch Action = 1 << iota
	// ActionCreate creates a new event.
	ActionCreate
	// ActionEdit updates fields of an existing event.
	ActionEdit
	// ActionMutateState performs a lifecycle transition on an event
	// (delete, publish, announce, cancel, open/close RSVPs).
	ActionMutateState
	// ActionReadResource reads a single entity by identifier.
	ActionReadResource
	// ActionCreateSubResource creates an entity owned by another
	// (e.g. a venue within a group).
	ActionCreateSubResource
)

var actionNames = map[Action]string{
	ActionSearch:            "search",
	ActionCreate:            "create",
	ActionEdit:              "edit",
	ActionMutateState:       "mutate-state",
	ActionReadResource:      "read-resource",
	ActionCreateSubResource: "create-sub-resource",
}

// allActions is the declaration order used for deterministic listings.
var allActions = []Action{
	ActionSearch,
	ActionCreate,
	ActionEdit,
	ActionMutateState,
	ActionReadResource,
	ActionCreateSubResource,
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction converts a wire name back to an Action.
func ParseAction(name string) (Action, error) {
	for action, n := range actionNames {
		if n == name {
			return action, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, name)
}

// ActionSet is a provider's static capability descriptor: the set of
// actions it supports. Declared once at construction, immutable afterwards.
type ActionSet uint8

// NewActionSet combines actions into a set.
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s |= ActionSet(a)
	}
	return s
}

// Has returns true if the set contains the action.
func (s ActionSet) Has(a Action) bool {
	return uint8(s)&uint8(a) != 0
}

// List returns the contained actions in declaration order.
func (s ActionSet) List() []Action {
	var actions []Action
	for _, a := range allActions {
		if s.Has(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Names returns the wire names of the contained actions.
func (s ActionSet) Names() []string {
	list := s.List()
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.String()
	}
	return names
}

// String returns a comma-joined human-readable representation.
func (s ActionSet) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), ",")
}
