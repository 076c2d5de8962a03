package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

func TestResourceID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		scheme string
		kind   string
		want   string
	}{
		{"self has no identifier", "meetup://self", "meetup", "self", ""},
		{"group urlname", "meetup://group/go-nyc", "meetup", "group", "go-nyc"},
		{"event id", "meetup://event/307212357", "meetup", "event", "307212357"},
		{"luma event", "luma://event/evt-abc123", "luma", "event", "evt-abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resourceID(tt.uri, tt.scheme, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResourceID_Invalid(t *testing.T) {
	for _, uri := range []string{
		"http://group/go-nyc",
		"meetup://group/",
		"meetup://somewhere-else",
	} {
		_, err := resourceID(uri, "meetup", "group")
		require.Error(t, err, uri)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestPortsValidate(t *testing.T) {
	err := (&Ports{}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRegistry)
}
