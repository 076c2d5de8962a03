package meetup

import (
	"context"
	"fmt"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/services"
)

// Entity kinds the provider accepts in action requests.
const (
	KindEvents       = "events"
	KindGroups       = "groups"
	KindMyGroups     = "my-groups"
	KindGroupMembers = "group-members"
	KindNetwork      = "network"
	KindSelf         = "self"
	KindGroup        = "group"
	KindEvent        = "event"
	KindGroupMember  = "group-member"
	KindVenue        = "venue"
)

// eventActionMutations maps mutate-state verbs onto their mutation document
// and response payload key.
var eventActionMutations = map[string]struct {
	query string
	key   string
}{
	"delete":      {deleteEventMutation, "deleteEvent"},
	"publish":     {publishEventMutation, "publishEvent"},
	"announce":    {announceEventMutation, "announceEvent"},
	"close_rsvps": {closeEventRsvpsMutation, "closeEventRsvps"},
	"open_rsvps":  {openEventRsvpsMutation, "openEventRsvps"},
}

// networkSearchQueries maps a network search type onto its query document
// and the proNetwork field holding the connection.
var networkSearchQueries = map[string]struct {
	query string
	key   string
}{
	"events":  {networkSearchEventsQuery, "eventsSearch"},
	"groups":  {networkSearchGroupsQuery, "groupsSearch"},
	"members": {networkSearchMembersQuery, "membersSearch"},
}

// Provider adapts Meetup.com to the uniform provider surface.
type Provider struct {
	client     *Client
	store      driven.TokenStore
	network    string
	configured bool
}

// NewProvider wires the Meetup provider. The network urlname scopes
// network-wide searches; it may be empty when the account has no Pro
// network.
func NewProvider(client *Client, store driven.TokenStore, cfg domain.MeetupSettings) *Provider {
	return &Provider{
		client:     client,
		store:      store,
		network:    cfg.ProNetworkURLName,
		configured: cfg.Configured(),
	}
}

func (p *Provider) Platform() domain.PlatformType { return domain.PlatformMeetup }

func (p *Provider) Capabilities() domain.ActionSet {
	return domain.NewActionSet(
		domain.ActionSearch,
		domain.ActionCreate,
		domain.ActionEdit,
		domain.ActionMutateState,
		domain.ActionReadResource,
		domain.ActionCreateSubResource,
	)
}

func (p *Provider) Supports(action domain.Action) bool {
	return p.Capabilities().Has(action)
}

func (p *Provider) AuthStatus() domain.AuthStatus {
	return services.DeriveAuthStatus(p.configured, p.store, domain.PlatformMeetup)
}

// Call routes one action request to the matching GraphQL operation.
func (p *Provider) Call(ctx context.Context, req driving.ActionRequest) (map[string]any, error) {
	if !p.configured {
		return nil, fmt.Errorf("%w: meetup OAuth client credentials missing", domain.ErrNotConfigured)
	}

	switch req.Action {
	case domain.ActionSearch:
		return p.search(ctx, req)
	case domain.ActionReadResource:
		return p.read(ctx, req)
	case domain.ActionCreate:
		return p.createEvent(ctx, req.Params)
	case domain.ActionEdit:
		return p.editEvent(ctx, req.ID, req.Params)
	case domain.ActionMutateState:
		return p.eventAction(ctx, req.ID, req.Verb)
	case domain.ActionCreateSubResource:
		if req.Kind != KindVenue {
			return nil, fmt.Errorf("%w: meetup cannot create %q", domain.ErrInvalidInput, req.Kind)
		}
		return p.createVenue(ctx, req.Params)
	default:
		return nil, fmt.Errorf("%w: meetup does not support %s", domain.ErrUnsupportedAction, req.Action)
	}
}

func (p *Provider) search(ctx context.Context, req driving.ActionRequest) (map[string]any, error) {
	switch req.Kind {
	case KindEvents:
		data, err := p.client.Execute(ctx, searchEventsQuery, searchVariables(req.Params))
		if err != nil {
			return nil, err
		}
		return nested(data, "eventSearch"), nil
	case KindGroups:
		data, err := p.client.Execute(ctx, searchGroupsQuery, searchVariables(req.Params))
		if err != nil {
			return nil, err
		}
		return nested(data, "groupSearch"), nil
	case KindMyGroups:
		data, err := p.client.Execute(ctx, listMyGroupsQuery, pageVariables(req.Params))
		if err != nil {
			return nil, err
		}
		return nested(nested(data, "self"), "memberships"), nil
	case KindGroupMembers:
		vars := pageVariables(req.Params)
		vars["urlname"] = stringParam(req.Params, "urlname")
		if status, ok := req.Params["status"]; ok {
			vars["status"] = status
		}
		data, err := p.client.Execute(ctx, groupMembersQuery, vars)
		if err != nil {
			return nil, err
		}
		return nested(nested(data, "groupByUrlname"), "memberships"), nil
	case KindNetwork:
		return p.networkSearch(ctx, req.Params)
	default:
		return nil, fmt.Errorf("%w: meetup cannot search %q", domain.ErrInvalidInput, req.Kind)
	}
}

func (p *Provider) read(ctx context.Context, req driving.ActionRequest) (map[string]any, error) {
	switch req.Kind {
	case KindSelf:
		data, err := p.client.Execute(ctx, selfQuery, nil)
		if err != nil {
			return nil, err
		}
		return nested(data, "self"), nil
	case KindGroup:
		data, err := p.client.Execute(ctx, groupByURLNameQuery, map[string]any{"urlname": req.ID})
		if err != nil {
			return nil, err
		}
		return nested(data, "groupByUrlname"), nil
	case KindEvent:
		data, err := p.client.Execute(ctx, eventByIDQuery, map[string]any{"eventId": req.ID})
		if err != nil {
			return nil, err
		}
		return nested(data, "event"), nil
	case KindNetwork:
		data, err := p.client.Execute(ctx, networkByURLNameQuery, map[string]any{"urlname": req.ID})
		if err != nil {
			return nil, err
		}
		return nested(data, "proNetwork"), nil
	case KindGroupMember:
		vars := map[string]any{
			"urlname":   stringParam(req.Params, "urlname"),
			"memberIds": []string{req.ID},
		}
		data, err := p.client.Execute(ctx, groupMemberByIDQuery, vars)
		if err != nil {
			return nil, err
		}
		return nested(nested(data, "groupByUrlname"), "memberships"), nil
	default:
		return nil, fmt.Errorf("%w: meetup cannot read %q", domain.ErrInvalidInput, req.Kind)
	}
}

func (p *Provider) networkSearch(ctx context.Context, params map[string]any) (map[string]any, error) {
	urlname := stringParam(params, "network_urlname")
	if urlname == "" {
		urlname = p.network
	}
	if urlname == "" {
		return nil, fmt.Errorf("%w: meetup pro network urlname not set", domain.ErrNotConfigured)
	}
	searchType := stringParam(params, "search_type")
	if searchType == "" {
		searchType = "events"
	}
	op, ok := networkSearchQueries[searchType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown network search type %q", domain.ErrInvalidInput, searchType)
	}

	vars := pageVariables(params)
	vars["urlname"] = urlname
	if searchType == "members" {
		if filter, ok := params["filter"]; ok {
			vars["filter"] = filter
		}
		for _, key := range []string{"sort", "desc"} {
			if v, ok := params[key]; ok {
				vars[key] = v
			}
		}
	} else if q := stringParam(params, "query"); q != "" {
		vars["query"] = q
	}

	data, err := p.client.Execute(ctx, op.query, vars)
	if err != nil {
		return nil, err
	}
	return nested(nested(data, "proNetwork"), op.key), nil
}

func (p *Provider) createEvent(ctx context.Context, input map[string]any) (map[string]any, error) {
	data, err := p.client.Execute(ctx, createEventMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	result, err := mutationResult(data, "createEvent")
	if err != nil {
		return nil, err
	}
	return nested(result, "event"), nil
}

func (p *Provider) editEvent(ctx context.Context, eventID string, input map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(input)+1)
	for k, v := range input {
		merged[k] = v
	}
	merged["eventId"] = eventID
	data, err := p.client.Execute(ctx, editEventMutation, map[string]any{"input": merged})
	if err != nil {
		return nil, err
	}
	result, err := mutationResult(data, "editEvent")
	if err != nil {
		return nil, err
	}
	return nested(result, "event"), nil
}

func (p *Provider) eventAction(ctx context.Context, eventID, verb string) (map[string]any, error) {
	op, ok := eventActionMutations[verb]
	if !ok {
		return nil, fmt.Errorf("%w: unknown event action %q", domain.ErrInvalidInput, verb)
	}
	data, err := p.client.Execute(ctx, op.query, map[string]any{"input": map[string]any{"eventId": eventID}})
	if err != nil {
		return nil, err
	}
	return mutationResult(data, op.key)
}

func (p *Provider) createVenue(ctx context.Context, input map[string]any) (map[string]any, error) {
	data, err := p.client.Execute(ctx, createVenueMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	result, err := mutationResult(data, "createVenue")
	if err != nil {
		return nil, err
	}
	return nested(result, "venue"), nil
}

// searchVariables shapes eventSearch/groupSearch variables: a filter object
// plus paging. A bare "query" param becomes the filter's query field.
func searchVariables(params map[string]any) map[string]any {
	vars := pageVariables(params)
	if filter, ok := params["filter"].(map[string]any); ok {
		vars["filter"] = filter
	} else if q := stringParam(params, "query"); q != "" {
		vars["filter"] = map[string]any{"query": q}
	} else {
		vars["filter"] = map[string]any{}
	}
	return vars
}

func pageVariables(params map[string]any) map[string]any {
	vars := make(map[string]any)
	if first, ok := intParam(params, "first"); ok {
		vars["first"] = first
	}
	if after := stringParam(params, "after"); after != "" {
		vars["after"] = after
	}
	return vars
}

func stringParam(params map[string]any, key string) string {
	v, _ := params[key].(string)
	return v
}

// intParam tolerates float64, the type JSON numbers decode to.
func intParam(params map[string]any, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func nested(data map[string]any, key string) map[string]any {
	if data == nil {
		return nil
	}
	child, _ := data[key].(map[string]any)
	return child
}
