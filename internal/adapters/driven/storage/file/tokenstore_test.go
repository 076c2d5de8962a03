package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

func testRecord() domain.CredentialRecord {
	return domain.CredentialRecord{
		Platform:     domain.PlatformMeetup,
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Scopes:       []string{"basic", "event_management"},
		ObtainedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestTokenStore_PutGet(t *testing.T) {
	store, err := NewTokenStore(t.TempDir())
	require.NoError(t, err)

	rec := testRecord()
	require.NoError(t, store.Put(domain.PlatformMeetup, rec))

	got, ok := store.Get(domain.PlatformMeetup)
	require.True(t, ok)
	assert.Equal(t, rec.AccessToken, got.AccessToken)
	assert.Equal(t, rec.RefreshToken, got.RefreshToken)
	assert.Equal(t, rec.Scopes, got.Scopes)
}

func TestTokenStore_Get_Absent(t *testing.T) {
	store, err := NewTokenStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get(domain.PlatformLuma)
	assert.False(t, ok)
}

func TestTokenStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	store, err := NewTokenStore(dir)
	require.NoError(t, err)

	rec := testRecord()
	require.NoError(t, store.Put(domain.PlatformMeetup, rec))

	// A fresh store over the same directory sees the record.
	reopened, err := NewTokenStore(dir)
	require.NoError(t, err)
	got, ok := reopened.Get(domain.PlatformMeetup)
	require.True(t, ok)
	assert.Equal(t, rec.AccessToken, got.AccessToken)
	assert.True(t, got.ExpiresAt.Equal(rec.ExpiresAt))
}

func TestTokenStore_CorruptFileTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meetup.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewTokenStore(dir)
	require.NoError(t, err)

	_, ok := store.Get(domain.PlatformMeetup)
	assert.False(t, ok)
}

func TestTokenStore_Clear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewTokenStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.PlatformMeetup, testRecord()))
	require.NoError(t, store.Clear(domain.PlatformMeetup))

	_, ok := store.Get(domain.PlatformMeetup)
	assert.False(t, ok)
	_, err = os.Stat(filepath.Join(dir, "meetup.json"))
	assert.True(t, os.IsNotExist(err))

	// Clearing an absent record is not an error.
	require.NoError(t, store.Clear(domain.PlatformMeetup))
}

func TestTokenStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewTokenStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(domain.PlatformMeetup, testRecord()))

	info, err := os.Stat(filepath.Join(dir, "meetup.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTokenStore_GetReturnsCopy(t *testing.T) {
	store, err := NewTokenStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Put(domain.PlatformMeetup, testRecord()))

	first, ok := store.Get(domain.PlatformMeetup)
	require.True(t, ok)
	first.AccessToken = "mutated"

	second, ok := store.Get(domain.PlatformMeetup)
	require.True(t, ok)
	assert.Equal(t, "access", second.AccessToken)
}
