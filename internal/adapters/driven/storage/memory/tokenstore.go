// Package memory provides in-memory driven adapters, used in tests and as
// a fallback when no durable cache directory is available.
package memory

import (
	"sync"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
)

// Ensure TokenStore implements the driven port.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore is a map-backed token store with no persistence.
type TokenStore struct {
	mu   sync.RWMutex
	recs map[domain.PlatformType]domain.CredentialRecord
}

// NewTokenStore creates an empty in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		recs: make(map[domain.PlatformType]domain.CredentialRecord),
	}
}

// Get returns the current record for a platform, or false if absent.
func (s *TokenStore) Get(platform domain.PlatformType) (*domain.CredentialRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recs[platform]
	if !ok {
		return nil, false
	}
	out := rec
	return &out, true
}

// Put replaces the record for a platform.
func (s *TokenStore) Put(platform domain.PlatformType, rec domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[platform] = rec
	return nil
}

// Clear removes the record for a platform.
func (s *TokenStore) Clear(platform domain.PlatformType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recs, platform)
	return nil
}
