package luma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/services"
)

func newTestTransport(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := memory.NewTokenStore()
	require.NoError(t, store.Put(domain.PlatformLuma, domain.CredentialRecord{
		Platform:    domain.PlatformLuma,
		AccessToken: "luma-key",
	}))
	auth := services.NewRefreshingClient(domain.PlatformLuma, store, nil, 0)
	return NewClient(srv.URL, auth)
}

func TestClient_Get_SendsAPIKeyHeader(t *testing.T) {
	var gotKey, gotPath, gotQuery string
	client := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-luma-api-key")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"entries":[]}`)) //nolint:errcheck
	}))

	params := url.Values{}
	params.Set("limit", "5")
	_, err := client.Get(context.Background(), "/calendar/list-events", params)
	require.NoError(t, err)

	assert.Equal(t, "luma-key", gotKey)
	assert.Equal(t, "/calendar/list-events", gotPath)
	assert.Equal(t, "limit=5", gotQuery)
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	var gotBody map[string]any
	client := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"event":{"api_id":"evt-1"}}`)) //nolint:errcheck
	}))

	data, err := client.Post(context.Background(), "/event/create", map[string]any{"name": "Demo day"})
	require.NoError(t, err)

	assert.Equal(t, "Demo day", gotBody["name"])
	event, ok := data["event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "evt-1", event["api_id"])
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Get(context.Background(), "/user/get-self", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_APIError_PrefersMessageField(t *testing.T) {
	client := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"event not found"}`)) //nolint:errcheck
	}))

	_, err := client.Get(context.Background(), "/event/get", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Contains(t, err.Error(), "event not found")
}

func TestClient_GetAllPages_FollowsCursors(t *testing.T) {
	var cursors []string
	client := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("pagination_cursor")
		cursors = append(cursors, cursor)
		switch cursor {
		case "":
			w.Write([]byte(`{"entries":[{"id":"a"}],"has_more":true,"next_cursor":"c1"}`)) //nolint:errcheck
		case "c1":
			w.Write([]byte(`{"entries":[{"id":"b"},{"id":"c"}],"has_more":true,"next_cursor":"c2"}`)) //nolint:errcheck
		default:
			w.Write([]byte(`{"entries":[{"id":"d"}],"has_more":false}`)) //nolint:errcheck
		}
	}))

	entries, err := client.GetAllPages(context.Background(), "/calendar/list-events", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "c1", "c2"}, cursors)
	require.Len(t, entries, 4)
	first, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a", first["id"])
}

func TestClient_GetAllPages_BoundsPageCount(t *testing.T) {
	var pages int
	client := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		fmt.Fprintf(w, `{"entries":[{"id":"p%d"}],"has_more":true,"next_cursor":"c%d"}`, pages, pages)
	}))

	entries, err := client.GetAllPages(context.Background(), "/calendar/list-people", nil)
	require.NoError(t, err)

	assert.Equal(t, maxPages, pages)
	assert.Len(t, entries, maxPages)
}
