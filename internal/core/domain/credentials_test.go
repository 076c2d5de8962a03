package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredentialRecord_Valid_NoToken(t *testing.T) {
	rec := CredentialRecord{Platform: PlatformMeetup}
	assert.False(t, rec.Valid(0))
}

func TestCredentialRecord_Valid_NoExpiry(t *testing.T) {
	rec := CredentialRecord{
		Platform:    PlatformLuma,
		AccessToken: "luma-key",
	}

	// Static keys never expire, regardless of skew.
	assert.True(t, rec.Valid(0))
	assert.True(t, rec.Valid(24*time.Hour))
}

func TestCredentialRecord_Valid_Skew(t *testing.T) {
	rec := CredentialRecord{
		Platform:    PlatformMeetup,
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(30 * time.Second),
	}

	// Usable right now, but inside a 60s refresh window.
	assert.True(t, rec.Valid(0))
	assert.False(t, rec.Valid(60*time.Second))
}

func TestCredentialRecord_Valid_Expired(t *testing.T) {
	rec := CredentialRecord{
		Platform:    PlatformMeetup,
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}
	assert.False(t, rec.Valid(0))
}

func TestCredentialRecord_Terminal(t *testing.T) {
	expired := CredentialRecord{
		Platform:    PlatformMeetup,
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}
	assert.True(t, expired.Terminal())

	refreshable := expired
	refreshable.RefreshToken = "refresh"
	assert.False(t, refreshable.Terminal())

	valid := CredentialRecord{
		Platform:    PlatformMeetup,
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	assert.False(t, valid.Terminal())
}

func TestCredentialRecord_Expires(t *testing.T) {
	staticKey := CredentialRecord{AccessToken: "key"}
	assert.False(t, staticKey.Expires())

	bearer := CredentialRecord{AccessToken: "tok", ExpiresAt: time.Now()}
	assert.True(t, bearer.Expires())
}
