package luma

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/services"
)

// Entity kinds the provider accepts in action requests.
const (
	KindEvents = "events"
	KindPeople = "people"
	KindGuests = "guests"
	KindSelf   = "self"
	KindEvent  = "event"
)

// Provider adapts Luma to the uniform provider surface. Luma has no venue
// or sub-resource concept, so create-sub-resource is absent from its
// capability set and fails before any network activity.
type Provider struct {
	client     *Client
	store      driven.TokenStore
	configured bool
}

func NewProvider(client *Client, store driven.TokenStore, cfg domain.LumaSettings) *Provider {
	return &Provider{
		client:     client,
		store:      store,
		configured: cfg.Configured(),
	}
}

func (p *Provider) Platform() domain.PlatformType { return domain.PlatformLuma }

func (p *Provider) Capabilities() domain.ActionSet {
	return domain.NewActionSet(
		domain.ActionSearch,
		domain.ActionCreate,
		domain.ActionEdit,
		domain.ActionMutateState,
		domain.ActionReadResource,
	)
}

func (p *Provider) Supports(action domain.Action) bool {
	return p.Capabilities().Has(action)
}

func (p *Provider) AuthStatus() domain.AuthStatus {
	return services.DeriveAuthStatus(p.configured, p.store, domain.PlatformLuma)
}

// Call routes one action request to the matching REST endpoint.
func (p *Provider) Call(ctx context.Context, req driving.ActionRequest) (map[string]any, error) {
	if !p.configured {
		return nil, fmt.Errorf("%w: luma API key missing", domain.ErrNotConfigured)
	}

	switch req.Action {
	case domain.ActionSearch:
		return p.list(ctx, req)
	case domain.ActionReadResource:
		return p.read(ctx, req)
	case domain.ActionCreate:
		data, err := p.client.Post(ctx, "/event/create", req.Params)
		if err != nil {
			return nil, err
		}
		return unwrapEvent(data), nil
	case domain.ActionEdit:
		body := make(map[string]any, len(req.Params)+1)
		for k, v := range req.Params {
			body[k] = v
		}
		body["event_id"] = req.ID
		data, err := p.client.Post(ctx, "/event/update", body)
		if err != nil {
			return nil, err
		}
		return unwrapEvent(data), nil
	case domain.ActionMutateState:
		if req.Verb != "cancel" {
			return nil, fmt.Errorf("%w: luma only supports cancel, got %q", domain.ErrInvalidInput, req.Verb)
		}
		return p.client.Post(ctx, "/event/cancel", map[string]any{"event_id": req.ID})
	default:
		return nil, fmt.Errorf("%w: luma does not support %s", domain.ErrUnsupportedAction, req.Action)
	}
}

// list handles the calendar-level collection endpoints. With "all" set the
// client follows pagination cursors and returns the combined entries.
func (p *Provider) list(ctx context.Context, req driving.ActionRequest) (map[string]any, error) {
	var path string
	params := url.Values{}

	switch req.Kind {
	case KindEvents:
		path = "/calendar/list-events"
	case KindPeople:
		path = "/calendar/list-people"
	case KindGuests:
		path = "/event/get-guests"
		eventID, _ := req.Params["event_id"].(string)
		if eventID == "" {
			eventID = req.ID
		}
		if eventID == "" {
			return nil, fmt.Errorf("%w: event_id required to list guests", domain.ErrInvalidInput)
		}
		params.Set("event_api_id", eventID)
	default:
		return nil, fmt.Errorf("%w: luma cannot list %q", domain.ErrInvalidInput, req.Kind)
	}

	if limit, ok := intParam(req.Params, "limit"); ok {
		params.Set("limit", strconv.Itoa(limit))
	}

	if all, _ := req.Params["all"].(bool); all {
		entries, err := p.client.GetAllPages(ctx, path, params)
		if err != nil {
			return nil, err
		}
		return map[string]any{"entries": entries}, nil
	}

	if after, _ := req.Params["after"].(string); after != "" {
		params.Set("pagination_cursor", after)
	}
	return p.client.Get(ctx, path, params)
}

func (p *Provider) read(ctx context.Context, req driving.ActionRequest) (map[string]any, error) {
	switch req.Kind {
	case KindSelf:
		data, err := p.client.Get(ctx, "/user/get-self", nil)
		if err != nil {
			return nil, err
		}
		if user, ok := data["user"].(map[string]any); ok {
			return user, nil
		}
		return data, nil
	case KindEvent:
		params := url.Values{}
		params.Set("api_id", req.ID)
		data, err := p.client.Get(ctx, "/event/get", params)
		if err != nil {
			return nil, err
		}
		return unwrapEvent(data), nil
	default:
		return nil, fmt.Errorf("%w: luma cannot read %q", domain.ErrInvalidInput, req.Kind)
	}
}

func unwrapEvent(data map[string]any) map[string]any {
	if event, ok := data["event"].(map[string]any); ok {
		return event
	}
	return data
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
