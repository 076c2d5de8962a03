package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
)

// Result is the uniform tool output: the platform response payload as
// returned by the provider.
type Result = map[string]any

// PlatformsOutput is the output schema for the list_platforms tool.
type PlatformsOutput struct {
	Platforms []PlatformInfo `json:"platforms"`
}

// PlatformInfo describes one registered platform.
type PlatformInfo struct {
	Name         string   `json:"name"`
	AuthStatus   string   `json:"auth_status"`
	Capabilities []string `json:"capabilities"`
}

// LoginOutput is the output schema for login tools.
type LoginOutput struct {
	AuthURL     string `json:"auth_url"`
	Instruction string `json:"instruction"`
}

// SearchEventsInput is the input schema for meetup_search_events.
type SearchEventsInput struct {
	Query     string  `json:"query" jsonschema:"search term"`
	Lat       float64 `json:"lat" jsonschema:"latitude for location-based search"`
	Lon       float64 `json:"lon" jsonschema:"longitude for location-based search"`
	StartDate string  `json:"start_date,omitempty" jsonschema:"start of date range (ISO 8601)"`
	EndDate   string  `json:"end_date,omitempty" jsonschema:"end of date range (ISO 8601)"`
	EventType string  `json:"event_type,omitempty" jsonschema:"event type filter (PHYSICAL or ONLINE)"`
	First     int     `json:"first,omitempty" jsonschema:"results per page (default 20, max 200)"`
	After     string  `json:"after,omitempty" jsonschema:"cursor for pagination"`
}

// SearchGroupsInput is the input schema for meetup_search_groups.
type SearchGroupsInput struct {
	Query string  `json:"query" jsonschema:"search term"`
	Lat   float64 `json:"lat,omitempty" jsonschema:"latitude for location-based search"`
	Lon   float64 `json:"lon,omitempty" jsonschema:"longitude for location-based search"`
	First int     `json:"first,omitempty" jsonschema:"results per page (default 20, max 200)"`
	After string  `json:"after,omitempty" jsonschema:"cursor for pagination"`
}

// ListMyGroupsInput is the input schema for meetup_list_my_groups.
type ListMyGroupsInput struct {
	First int    `json:"first,omitempty" jsonschema:"results per page (default 50)"`
	After string `json:"after,omitempty" jsonschema:"cursor for pagination"`
}

// ListGroupMembersInput is the input schema for meetup_list_group_members.
type ListGroupMembersInput struct {
	GroupURLName string `json:"group_urlname" jsonschema:"URL name of the group"`
	First        int    `json:"first,omitempty" jsonschema:"results per page (default 20, max 200)"`
	After        string `json:"after,omitempty" jsonschema:"cursor for pagination"`
	Status       string `json:"status,omitempty" jsonschema:"membership status filter (ACTIVE, BLOCKED, PENDING)"`
}

// GetMemberInput is the input schema for meetup_get_member.
type GetMemberInput struct {
	GroupURLName string `json:"group_urlname" jsonschema:"URL name of the group"`
	MemberID     string `json:"member_id" jsonschema:"the Meetup member ID"`
}

// NetworkSearchInput is the input schema for meetup_network_search.
type NetworkSearchInput struct {
	SearchType        string   `json:"search_type" jsonschema:"what to search for: events, groups, or members"`
	NetworkURLName    string   `json:"network_urlname,omitempty" jsonschema:"Pro network URL name (defaults to configured network)"`
	Query             string   `json:"query,omitempty" jsonschema:"search term (name for members, title for events)"`
	Roles             []string `json:"roles,omitempty" jsonschema:"member role filter (ORGANIZER, COORGANIZER, MEMBER)"`
	EventsAttendedMin int      `json:"events_attended_min,omitempty" jsonschema:"minimum events attended (members only)"`
	Sort              string   `json:"sort,omitempty" jsonschema:"sort field (members: groupsCount, eventsAttended)"`
	Desc              bool     `json:"desc,omitempty" jsonschema:"sort descending"`
	First             int      `json:"first,omitempty" jsonschema:"results per page (default 20)"`
	After             string   `json:"after,omitempty" jsonschema:"cursor for pagination"`
}

// CreateEventInput is the input schema for meetup_create_event.
type CreateEventInput struct {
	GroupURLName       string   `json:"group_urlname" jsonschema:"URL name of the group hosting the event"`
	Title              string   `json:"title" jsonschema:"event title"`
	Description        string   `json:"description" jsonschema:"event description (HTML supported)"`
	StartDateTime      string   `json:"start_date_time" jsonschema:"start time in ISO 8601 format"`
	Duration           string   `json:"duration,omitempty" jsonschema:"duration as ISO 8601 period (default PT2H)"`
	EventType          string   `json:"event_type,omitempty" jsonschema:"PHYSICAL or ONLINE"`
	VenueID            string   `json:"venue_id,omitempty" jsonschema:"venue ID (from meetup_create_venue)"`
	PublishStatus      string   `json:"publish_status,omitempty" jsonschema:"DRAFT or PUBLISHED (defaults to DRAFT)"`
	RSVPLimit          int      `json:"rsvp_limit,omitempty" jsonschema:"maximum attendees (0 = unlimited)"`
	Question           string   `json:"question,omitempty" jsonschema:"RSVP question"`
	Hosts              []string `json:"hosts,omitempty" jsonschema:"host member IDs"`
	Topics             []string `json:"topics,omitempty" jsonschema:"topic IDs"`
	ProNetworkFilterID string   `json:"pro_network_filter_id,omitempty" jsonschema:"Pro network filter ID for network-wide events"`
	ProNetworkTimezone string   `json:"pro_network_timezone,omitempty" jsonschema:"timezone for Pro network events"`
}

// EditEventInput is the input schema for meetup_edit_event. Only provided
// fields are updated.
type EditEventInput struct {
	EventID       string   `json:"event_id" jsonschema:"the event ID to edit"`
	Title         string   `json:"title,omitempty" jsonschema:"new event title"`
	Description   string   `json:"description,omitempty" jsonschema:"new description (HTML supported)"`
	StartDateTime string   `json:"start_date_time,omitempty" jsonschema:"new start time (ISO 8601)"`
	Duration      string   `json:"duration,omitempty" jsonschema:"new duration (ISO 8601 period)"`
	EventType     string   `json:"event_type,omitempty" jsonschema:"PHYSICAL or ONLINE"`
	VenueID       string   `json:"venue_id,omitempty" jsonschema:"new venue ID"`
	RSVPLimit     int      `json:"rsvp_limit,omitempty" jsonschema:"new RSVP limit"`
	Question      string   `json:"question,omitempty" jsonschema:"new RSVP question"`
	Hosts         []string `json:"hosts,omitempty" jsonschema:"new host member IDs"`
	Topics        []string `json:"topics,omitempty" jsonschema:"new topic IDs"`
}

// EventActionInput is the input schema for meetup_event_action.
type EventActionInput struct {
	EventID string `json:"event_id" jsonschema:"the event ID"`
	Action  string `json:"action" jsonschema:"one of: delete, publish, announce, close_rsvps, open_rsvps"`
}

// CreateVenueInput is the input schema for meetup_create_venue.
type CreateVenueInput struct {
	GroupURLName string  `json:"group_urlname" jsonschema:"URL name of the group"`
	Name         string  `json:"name" jsonschema:"venue name"`
	Address      string  `json:"address" jsonschema:"street address"`
	City         string  `json:"city" jsonschema:"city name"`
	Country      string  `json:"country" jsonschema:"two-letter country code (e.g. US, DE)"`
	State        string  `json:"state,omitempty" jsonschema:"state or province"`
	Lat          float64 `json:"lat,omitempty" jsonschema:"latitude"`
	Lon          float64 `json:"lon,omitempty" jsonschema:"longitude"`
}

// LumaListInput is the shared input schema for Luma calendar listings.
type LumaListInput struct {
	After string `json:"after,omitempty" jsonschema:"pagination cursor from a previous response"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of entries to return"`
	All   bool   `json:"all,omitempty" jsonschema:"follow pagination cursors and return all entries"`
}

// LumaCreateEventInput is the input schema for luma_create_event.
type LumaCreateEventInput struct {
	Name         string         `json:"name" jsonschema:"event title"`
	StartAt      string         `json:"start_at" jsonschema:"start time in ISO 8601 format (UTC)"`
	EndAt        string         `json:"end_at" jsonschema:"end time in ISO 8601 format (UTC)"`
	Description  string         `json:"description,omitempty" jsonschema:"event description (markdown supported)"`
	Timezone     string         `json:"timezone,omitempty" jsonschema:"timezone (e.g. America/New_York)"`
	GeoAddress   map[string]any `json:"geo_address_json,omitempty" jsonschema:"venue address object"`
	GeoLatitude  string         `json:"geo_latitude,omitempty" jsonschema:"venue latitude"`
	GeoLongitude string         `json:"geo_longitude,omitempty" jsonschema:"venue longitude"`
	MeetingURL   string         `json:"meeting_url,omitempty" jsonschema:"online meeting URL (for virtual events)"`
	Visibility   string         `json:"visibility,omitempty" jsonschema:"public or private (default public)"`
}

// LumaUpdateEventInput is the input schema for luma_update_event. Only
// provided fields are changed.
type LumaUpdateEventInput struct {
	EventID      string         `json:"event_id" jsonschema:"the Luma event API ID (evt-...)"`
	Name         string         `json:"name,omitempty" jsonschema:"new event title"`
	Description  string         `json:"description,omitempty" jsonschema:"new description (markdown)"`
	StartAt      string         `json:"start_at,omitempty" jsonschema:"new start time (ISO 8601 UTC)"`
	EndAt        string         `json:"end_at,omitempty" jsonschema:"new end time (ISO 8601 UTC)"`
	Timezone     string         `json:"timezone,omitempty" jsonschema:"new timezone"`
	GeoAddress   map[string]any `json:"geo_address_json,omitempty" jsonschema:"new venue address object"`
	GeoLatitude  string         `json:"geo_latitude,omitempty" jsonschema:"new latitude"`
	GeoLongitude string         `json:"geo_longitude,omitempty" jsonschema:"new longitude"`
	MeetingURL   string         `json:"meeting_url,omitempty" jsonschema:"new online meeting URL"`
	Visibility   string         `json:"visibility,omitempty" jsonschema:"new visibility (public/private)"`
}

// LumaEventInput is the input schema for single-event Luma tools.
type LumaEventInput struct {
	EventID string `json:"event_id" jsonschema:"the Luma event API ID (evt-...)"`
}

// LumaListGuestsInput is the input schema for luma_list_guests.
type LumaListGuestsInput struct {
	EventID string `json:"event_id" jsonschema:"the Luma event API ID (evt-...)"`
	After   string `json:"after,omitempty" jsonschema:"pagination cursor"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of guests to return"`
	All     bool   `json:"all,omitempty" jsonschema:"follow pagination cursors and return all guests"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_platforms",
		Description: "List configured event platforms with their authentication status and capabilities",
	}, s.handleListPlatforms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_login",
		Description: "Start Meetup OAuth2 login; returns an authorization URL to open in a browser",
	}, s.handleMeetupLogin)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_search_events",
		Description: "Search Meetup events by keyword and location with optional filters",
	}, s.handleSearchEvents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_search_groups",
		Description: "Search Meetup groups by keyword with optional geo filter",
	}, s.handleSearchGroups)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_list_my_groups",
		Description: "List all Meetup groups the authenticated user belongs to",
	}, s.handleListMyGroups)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_list_group_members",
		Description: "List members of a Meetup group with their roles and join dates",
	}, s.handleListGroupMembers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_get_member",
		Description: "Get a member's profile and membership metadata within a Meetup group",
	}, s.handleGetMember)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_network_search",
		Description: "Search events, groups or members within a Meetup Pro network",
	}, s.handleNetworkSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_create_event",
		Description: "Create a Meetup event (defaults to DRAFT for safety)",
	}, s.handleCreateEvent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_edit_event",
		Description: "Edit an existing Meetup event; only provided fields are updated",
	}, s.handleEditEvent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_event_action",
		Description: "Perform a lifecycle action on a Meetup event (delete, publish, announce, close_rsvps, open_rsvps)",
	}, s.handleEventAction)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "meetup_create_venue",
		Description: "Create a venue for use in Meetup events",
	}, s.handleCreateVenue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "luma_list_events",
		Description: "List events from your Luma calendar",
	}, s.handleLumaListEvents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "luma_create_event",
		Description: "Create a Luma event",
	}, s.handleLumaCreateEvent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "luma_update_event",
		Description: "Update a Luma event; only provided fields are changed",
	}, s.handleLumaUpdateEvent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "luma_cancel_event",
		Description: "Cancel a Luma event",
	}, s.handleLumaCancelEvent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "luma_list_people",
		Description: "List all people from your Luma calendar with attendance counts",
	}, s.handleLumaListPeople)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "luma_list_guests",
		Description: "List guests for a Luma event",
	}, s.handleLumaListGuests)
}

// dispatch routes one action request through the registry.
func (s *Server) dispatch(
	ctx context.Context,
	platform domain.PlatformType,
	req driving.ActionRequest,
) (*mcp.CallToolResult, Result, error) {
	result, err := s.ports.Registry.Dispatch(ctx, platform, req)
	if err != nil {
		return nil, nil, err
	}
	return nil, result, nil
}

func (s *Server) handleListPlatforms(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, PlatformsOutput, error) {
	providers := s.ports.Registry.All()
	out := PlatformsOutput{Platforms: make([]PlatformInfo, len(providers))}
	for i, p := range providers {
		out.Platforms[i] = PlatformInfo{
			Name:         string(p.Platform()),
			AuthStatus:   string(p.AuthStatus()),
			Capabilities: p.Capabilities().Names(),
		}
	}
	return nil, out, nil
}

func (s *Server) handleMeetupLogin(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, LoginOutput, error) {
	flow, ok := s.ports.Flows[domain.PlatformMeetup]
	if !ok {
		return nil, LoginOutput{}, fmt.Errorf("%w: no login flow for meetup", domain.ErrNotConfigured)
	}
	url, err := flow.StartLogin()
	if err != nil {
		return nil, LoginOutput{}, err
	}
	return nil, LoginOutput{
		AuthURL: url,
		Instruction: "Open this URL in a browser. After authorizing, the server will " +
			"automatically receive and cache your token.",
	}, nil
}

func (s *Server) handleSearchEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in SearchEventsInput,
) (*mcp.CallToolResult, Result, error) {
	filter := map[string]any{"query": in.Query, "lat": in.Lat, "lon": in.Lon}
	if in.StartDate != "" {
		filter["startDateRange"] = in.StartDate
	}
	if in.EndDate != "" {
		filter["endDateRange"] = in.EndDate
	}
	if in.EventType != "" {
		filter["eventType"] = in.EventType
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "events",
		Params: map[string]any{
			"filter": filter,
			"first":  defaultPage(in.First),
			"after":  in.After,
		},
	})
}

func (s *Server) handleSearchGroups(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in SearchGroupsInput,
) (*mcp.CallToolResult, Result, error) {
	filter := map[string]any{"query": in.Query}
	if in.Lat != 0 || in.Lon != 0 {
		filter["lat"] = in.Lat
		filter["lon"] = in.Lon
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "groups",
		Params: map[string]any{
			"filter": filter,
			"first":  defaultPage(in.First),
			"after":  in.After,
		},
	})
}

func (s *Server) handleListMyGroups(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in ListMyGroupsInput,
) (*mcp.CallToolResult, Result, error) {
	first := in.First
	if first <= 0 {
		first = 50
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "my-groups",
		Params: map[string]any{"first": first, "after": in.After},
	})
}

func (s *Server) handleListGroupMembers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in ListGroupMembersInput,
) (*mcp.CallToolResult, Result, error) {
	params := map[string]any{
		"urlname": in.GroupURLName,
		"first":   defaultPage(in.First),
		"after":   in.After,
	}
	if in.Status != "" {
		params["status"] = []string{in.Status}
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "group-members",
		Params: params,
	})
}

func (s *Server) handleGetMember(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in GetMemberInput,
) (*mcp.CallToolResult, Result, error) {
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionReadResource,
		Kind:   "group-member",
		ID:     in.MemberID,
		Params: map[string]any{"urlname": in.GroupURLName},
	})
}

func (s *Server) handleNetworkSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in NetworkSearchInput,
) (*mcp.CallToolResult, Result, error) {
	params := map[string]any{
		"search_type": in.SearchType,
		"first":       defaultPage(in.First),
		"after":       in.After,
	}
	if in.NetworkURLName != "" {
		params["network_urlname"] = in.NetworkURLName
	}
	if in.SearchType == "members" {
		filter := map[string]any{}
		if in.Query != "" {
			filter["query"] = in.Query
		}
		if len(in.Roles) > 0 {
			filter["roles"] = in.Roles
		}
		if in.EventsAttendedMin > 0 {
			filter["eventsAttendedMin"] = in.EventsAttendedMin
		}
		if len(filter) > 0 {
			params["filter"] = filter
		}
		if in.Sort != "" {
			params["sort"] = in.Sort
			params["desc"] = in.Desc
		}
	} else if in.Query != "" {
		params["query"] = in.Query
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "network",
		Params: params,
	})
}

func (s *Server) handleCreateEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in CreateEventInput,
) (*mcp.CallToolResult, Result, error) {
	duration := in.Duration
	if duration == "" {
		duration = "PT2H"
	}
	publishStatus := in.PublishStatus
	if publishStatus == "" {
		publishStatus = "DRAFT"
	}
	input := map[string]any{
		"groupUrlname":  in.GroupURLName,
		"title":         in.Title,
		"description":   in.Description,
		"startDateTime": in.StartDateTime,
		"duration":      duration,
		"publishStatus": publishStatus,
	}
	if in.EventType != "" {
		input["eventType"] = in.EventType
	}
	if in.VenueID != "" {
		input["venueId"] = in.VenueID
	}
	if in.RSVPLimit > 0 {
		input["rsvpSettings"] = map[string]any{"rsvpLimit": in.RSVPLimit}
	}
	if in.Question != "" {
		input["question"] = in.Question
	}
	if len(in.Hosts) > 0 {
		input["hosts"] = in.Hosts
	}
	if len(in.Topics) > 0 {
		input["topics"] = in.Topics
	}
	if in.ProNetworkFilterID != "" {
		input["proNetworkFilterId"] = in.ProNetworkFilterID
	}
	if in.ProNetworkTimezone != "" {
		input["proNetworkTimezone"] = in.ProNetworkTimezone
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionCreate,
		Kind:   "event",
		Params: input,
	})
}

func (s *Server) handleEditEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in EditEventInput,
) (*mcp.CallToolResult, Result, error) {
	input := map[string]any{}
	if in.Title != "" {
		input["title"] = in.Title
	}
	if in.Description != "" {
		input["description"] = in.Description
	}
	if in.StartDateTime != "" {
		input["startDateTime"] = in.StartDateTime
	}
	if in.Duration != "" {
		input["duration"] = in.Duration
	}
	if in.EventType != "" {
		input["eventType"] = in.EventType
	}
	if in.VenueID != "" {
		input["venueId"] = in.VenueID
	}
	if in.RSVPLimit > 0 {
		input["rsvpSettings"] = map[string]any{"rsvpLimit": in.RSVPLimit}
	}
	if in.Question != "" {
		input["question"] = in.Question
	}
	if len(in.Hosts) > 0 {
		input["hosts"] = in.Hosts
	}
	if len(in.Topics) > 0 {
		input["topics"] = in.Topics
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionEdit,
		Kind:   "event",
		ID:     in.EventID,
		Params: input,
	})
}

func (s *Server) handleEventAction(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in EventActionInput,
) (*mcp.CallToolResult, Result, error) {
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionMutateState,
		Kind:   "event",
		ID:     in.EventID,
		Verb:   in.Action,
	})
}

func (s *Server) handleCreateVenue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in CreateVenueInput,
) (*mcp.CallToolResult, Result, error) {
	input := map[string]any{
		"groupUrlname": in.GroupURLName,
		"name":         in.Name,
		"address":      in.Address,
		"city":         in.City,
		"country":      in.Country,
	}
	if in.State != "" {
		input["state"] = in.State
	}
	if in.Lat != 0 || in.Lon != 0 {
		input["lat"] = in.Lat
		input["lng"] = in.Lon
	}
	return s.dispatch(ctx, domain.PlatformMeetup, driving.ActionRequest{
		Action: domain.ActionCreateSubResource,
		Kind:   "venue",
		Params: input,
	})
}

func (s *Server) handleLumaListEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in LumaListInput,
) (*mcp.CallToolResult, Result, error) {
	return s.dispatch(ctx, domain.PlatformLuma, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "events",
		Params: lumaListParams(in.After, in.Limit, in.All),
	})
}

func (s *Server) handleLumaListPeople(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in LumaListInput,
) (*mcp.CallToolResult, Result, error) {
	return s.dispatch(ctx, domain.PlatformLuma, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "people",
		Params: lumaListParams(in.After, in.Limit, in.All),
	})
}

func (s *Server) handleLumaListGuests(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in LumaListGuestsInput,
) (*mcp.CallToolResult, Result, error) {
	params := lumaListParams(in.After, in.Limit, in.All)
	params["event_id"] = in.EventID
	return s.dispatch(ctx, domain.PlatformLuma, driving.ActionRequest{
		Action: domain.ActionSearch,
		Kind:   "guests",
		Params: params,
	})
}

func (s *Server) handleLumaCreateEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in LumaCreateEventInput,
) (*mcp.CallToolResult, Result, error) {
	visibility := in.Visibility
	if visibility == "" {
		visibility = "public"
	}
	input := map[string]any{
		"name":       in.Name,
		"start_at":   in.StartAt,
		"end_at":     in.EndAt,
		"visibility": visibility,
	}
	if in.Description != "" {
		input["description_md"] = in.Description
	}
	if in.Timezone != "" {
		input["timezone"] = in.Timezone
	}
	if in.GeoAddress != nil {
		input["geo_address_json"] = in.GeoAddress
	}
	if in.GeoLatitude != "" {
		input["geo_latitude"] = in.GeoLatitude
	}
	if in.GeoLongitude != "" {
		input["geo_longitude"] = in.GeoLongitude
	}
	if in.MeetingURL != "" {
		input["meeting_url"] = in.MeetingURL
	}
	return s.dispatch(ctx, domain.PlatformLuma, driving.ActionRequest{
		Action: domain.ActionCreate,
		Kind:   "event",
		Params: input,
	})
}

func (s *Server) handleLumaUpdateEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in LumaUpdateEventInput,
) (*mcp.CallToolResult, Result, error) {
	input := map[string]any{}
	if in.Name != "" {
		input["name"] = in.Name
	}
	if in.Description != "" {
		input["description_md"] = in.Description
	}
	if in.StartAt != "" {
		input["start_at"] = in.StartAt
	}
	if in.EndAt != "" {
		input["end_at"] = in.EndAt
	}
	if in.Timezone != "" {
		input["timezone"] = in.Timezone
	}
	if in.GeoAddress != nil {
		input["geo_address_json"] = in.GeoAddress
	}
	if in.GeoLatitude != "" {
		input["geo_latitude"] = in.GeoLatitude
	}
	if in.GeoLongitude != "" {
		input["geo_longitude"] = in.GeoLongitude
	}
	if in.MeetingURL != "" {
		input["meeting_url"] = in.MeetingURL
	}
	if in.Visibility != "" {
		input["visibility"] = in.Visibility
	}
	return s.dispatch(ctx, domain.PlatformLuma, driving.ActionRequest{
		Action: domain.ActionEdit,
		Kind:   "event",
		ID:     in.EventID,
		Params: input,
	})
}

func (s *Server) handleLumaCancelEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	in LumaEventInput,
) (*mcp.CallToolResult, Result, error) {
	return s.dispatch(ctx, domain.PlatformLuma, driving.ActionRequest{
		Action: domain.ActionMutateState,
		Kind:   "event",
		ID:     in.EventID,
		Verb:   "cancel",
	})
}

func defaultPage(first int) int {
	if first <= 0 {
		return 20
	}
	return first
}

func lumaListParams(after string, limit int, all bool) map[string]any {
	params := map[string]any{}
	if after != "" {
		params["after"] = after
	}
	if limit > 0 {
		params["limit"] = limit
	}
	if all {
		params["all"] = true
	}
	return params
}
