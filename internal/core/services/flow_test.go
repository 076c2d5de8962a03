package services

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdeck-labs/eventdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

// fakeExchanger counts exchanges so tests can assert how often the token
// endpoint would have been hit.
type fakeExchanger struct {
	mu          sync.Mutex
	exchanges   int
	refreshes   int
	exchangeErr error
	refreshErr  error
	rotatedTo   string
	ttl         time.Duration
}

func (f *fakeExchanger) AuthCodeURL(state string) string {
	return "https://auth.example.com/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeExchanger) ExchangeCode(_ context.Context, code string) (*domain.CredentialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges++
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &domain.CredentialRecord{
		AccessToken:  "access-" + code,
		RefreshToken: "refresh-" + code,
		ExpiresAt:    time.Now().Add(f.tokenTTL()),
		ObtainedAt:   time.Now(),
	}, nil
}

func (f *fakeExchanger) Refresh(_ context.Context, _ string) (*domain.CredentialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &domain.CredentialRecord{
		AccessToken:  fmt.Sprintf("refreshed-%d", f.refreshes),
		RefreshToken: f.rotatedTo,
		ExpiresAt:    time.Now().Add(f.tokenTTL()),
		ObtainedAt:   time.Now(),
	}, nil
}

func (f *fakeExchanger) tokenTTL() time.Duration {
	if f.ttl != 0 {
		return f.ttl
	}
	return time.Hour
}

func (f *fakeExchanger) counts() (exchanges, refreshes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exchanges, f.refreshes
}

func newTestEngine(exchanger *fakeExchanger, store *memory.TokenStore) *FlowEngine {
	return NewFlowEngine(domain.PlatformMeetup, exchanger, store, 10*time.Minute, time.Minute)
}

func pendingState(t *testing.T, e *FlowEngine) string {
	t.Helper()
	attempt, ok := e.PendingAttempt()
	require.True(t, ok)
	return attempt.State
}

func TestFlowEngine_StartLogin_EmbedsState(t *testing.T) {
	engine := newTestEngine(&fakeExchanger{}, memory.NewTokenStore())

	authURL, err := engine.StartLogin()
	require.NoError(t, err)

	state := pendingState(t, engine)
	assert.NotEmpty(t, state)
	assert.Contains(t, authURL, url.QueryEscape(state))
}

func TestFlowEngine_StartLogin_SupersedesPending(t *testing.T) {
	store := memory.NewTokenStore()
	engine := newTestEngine(&fakeExchanger{}, store)

	_, err := engine.StartLogin()
	require.NoError(t, err)
	firstState := pendingState(t, engine)

	_, err = engine.StartLogin()
	require.NoError(t, err)

	// The superseded state token must no longer be accepted.
	err = engine.HandleCallback(context.Background(), "code", firstState)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthState)
	_, ok := store.Get(domain.PlatformMeetup)
	assert.False(t, ok)

	// The live attempt still completes.
	err = engine.HandleCallback(context.Background(), "code", pendingState(t, engine))
	require.NoError(t, err)
}

func TestFlowEngine_HandleCallback_StoresCredential(t *testing.T) {
	store := memory.NewTokenStore()
	engine := newTestEngine(&fakeExchanger{}, store)

	_, err := engine.StartLogin()
	require.NoError(t, err)

	err = engine.HandleCallback(context.Background(), "the-code", pendingState(t, engine))
	require.NoError(t, err)

	rec, ok := store.Get(domain.PlatformMeetup)
	require.True(t, ok)
	assert.Equal(t, domain.PlatformMeetup, rec.Platform)
	assert.Equal(t, "access-the-code", rec.AccessToken)
	assert.True(t, rec.HasRefreshToken())

	// The attempt is consumed: replaying the callback fails.
	_, ok = engine.PendingAttempt()
	assert.False(t, ok)
}

func TestFlowEngine_HandleCallback_NoPending(t *testing.T) {
	engine := newTestEngine(&fakeExchanger{}, memory.NewTokenStore())

	err := engine.HandleCallback(context.Background(), "code", "state")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthState)
}

func TestFlowEngine_HandleCallback_StateMismatch(t *testing.T) {
	store := memory.NewTokenStore()
	existing := domain.CredentialRecord{
		Platform:    domain.PlatformMeetup,
		AccessToken: "existing",
	}
	require.NoError(t, store.Put(domain.PlatformMeetup, existing))

	exchanger := &fakeExchanger{}
	engine := newTestEngine(exchanger, store)
	_, err := engine.StartLogin()
	require.NoError(t, err)

	err = engine.HandleCallback(context.Background(), "code", "forged-state")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthState)

	// No exchange happened and the stored credential is untouched.
	exchanges, _ := exchanger.counts()
	assert.Zero(t, exchanges)
	rec, ok := store.Get(domain.PlatformMeetup)
	require.True(t, ok)
	assert.Equal(t, "existing", rec.AccessToken)

	// The pending attempt survives a mismatch: the real callback can
	// still arrive.
	_, ok = engine.PendingAttempt()
	assert.True(t, ok)
}

func TestFlowEngine_HandleCallback_ExpiredAttempt(t *testing.T) {
	exchanger := &fakeExchanger{}
	engine := NewFlowEngine(
		domain.PlatformMeetup, exchanger, memory.NewTokenStore(),
		-time.Second, time.Minute)

	_, err := engine.StartLogin()
	require.NoError(t, err)
	state := pendingState(t, engine)

	err = engine.HandleCallback(context.Background(), "code", state)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthState)

	// The expired attempt is discarded, not retried.
	_, ok := engine.PendingAttempt()
	assert.False(t, ok)
	exchanges, _ := exchanger.counts()
	assert.Zero(t, exchanges)
}

func TestFlowEngine_HandleCallback_ExchangeRejected(t *testing.T) {
	store := memory.NewTokenStore()
	exchanger := &fakeExchanger{
		exchangeErr: fmt.Errorf("%w: invalid_grant", domain.ErrAuthExchange),
	}
	engine := newTestEngine(exchanger, store)

	_, err := engine.StartLogin()
	require.NoError(t, err)
	state := pendingState(t, engine)

	err = engine.HandleCallback(context.Background(), "bad-code", state)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthExchange)

	// Attempt consumed, nothing stored: the login must be restarted.
	_, ok := engine.PendingAttempt()
	assert.False(t, ok)
	_, ok = store.Get(domain.PlatformMeetup)
	assert.False(t, ok)
}

func TestFlowEngine_Refresh_NoCredential(t *testing.T) {
	engine := newTestEngine(&fakeExchanger{}, memory.NewTokenStore())

	_, err := engine.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestFlowEngine_Refresh_NoRefreshToken(t *testing.T) {
	store := memory.NewTokenStore()
	require.NoError(t, store.Put(domain.PlatformMeetup, domain.CredentialRecord{
		Platform:    domain.PlatformMeetup,
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}))
	exchanger := &fakeExchanger{}
	engine := newTestEngine(exchanger, store)

	_, err := engine.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, refreshes := exchanger.counts()
	assert.Zero(t, refreshes)
}

func TestFlowEngine_Refresh_KeepsRefreshTokenUnlessRotated(t *testing.T) {
	store := memory.NewTokenStore()
	require.NoError(t, store.Put(domain.PlatformMeetup, domain.CredentialRecord{
		Platform:     domain.PlatformMeetup,
		AccessToken:  "stale",
		RefreshToken: "original-rt",
		ExpiresAt:    time.Now().Add(-time.Minute),
		Scopes:       []string{"basic"},
	}))
	engine := newTestEngine(&fakeExchanger{}, store)

	rec, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "original-rt", rec.RefreshToken)
	assert.Equal(t, []string{"basic"}, rec.Scopes)

	stored, ok := store.Get(domain.PlatformMeetup)
	require.True(t, ok)
	assert.Equal(t, rec.AccessToken, stored.AccessToken)
}

func TestFlowEngine_Refresh_AdoptsRotatedToken(t *testing.T) {
	store := memory.NewTokenStore()
	require.NoError(t, store.Put(domain.PlatformMeetup, domain.CredentialRecord{
		Platform:     domain.PlatformMeetup,
		AccessToken:  "stale",
		RefreshToken: "original-rt",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))
	engine := newTestEngine(&fakeExchanger{rotatedTo: "rotated-rt"}, store)

	rec, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated-rt", rec.RefreshToken)
}

func TestFlowEngine_Refresh_RejectedClearsCredential(t *testing.T) {
	store := memory.NewTokenStore()
	require.NoError(t, store.Put(domain.PlatformMeetup, domain.CredentialRecord{
		Platform:     domain.PlatformMeetup,
		AccessToken:  "stale",
		RefreshToken: "revoked-rt",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))
	exchanger := &fakeExchanger{
		refreshErr: fmt.Errorf("%w: invalid_grant", domain.ErrAuthRefresh),
	}
	engine := newTestEngine(exchanger, store)

	_, err := engine.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthRefresh)

	_, ok := store.Get(domain.PlatformMeetup)
	assert.False(t, ok)
}

func TestFlowEngine_Refresh_NetworkErrorKeepsCredential(t *testing.T) {
	store := memory.NewTokenStore()
	require.NoError(t, store.Put(domain.PlatformMeetup, domain.CredentialRecord{
		Platform:     domain.PlatformMeetup,
		AccessToken:  "stale",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))
	exchanger := &fakeExchanger{
		refreshErr: fmt.Errorf("%w: connection refused", domain.ErrNetwork),
	}
	engine := newTestEngine(exchanger, store)

	_, err := engine.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)

	// Transient failure: the refresh token stays for the next try.
	rec, ok := store.Get(domain.PlatformMeetup)
	require.True(t, ok)
	assert.Equal(t, "rt", rec.RefreshToken)
}

func TestFlowEngine_Refresh_ConcurrentSharesOneExchange(t *testing.T) {
	store := memory.NewTokenStore()
	require.NoError(t, store.Put(domain.PlatformMeetup, domain.CredentialRecord{
		Platform:     domain.PlatformMeetup,
		AccessToken:  "stale",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))
	exchanger := &fakeExchanger{}
	engine := newTestEngine(exchanger, store)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]*domain.CredentialRecord, callers)
	errs := make([]error, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Refresh(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.True(t, results[i].Valid(0))
	}

	// The single-use refresh token is presented exactly once: callers in
	// flight share the exchange, and a caller starting a new flight sees
	// the fresh record in the re-check and skips the token endpoint.
	_, refreshes := exchanger.counts()
	assert.Equal(t, 1, refreshes)
}
