// Package file implements the token store on the local filesystem: one
// JSON credential file per platform under a configurable directory.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
	"github.com/eventdeck-labs/eventdeck-cli/internal/logger"
)

// Ensure TokenStore implements the driven port.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore keeps credential records in memory and mirrors them to disk.
// The in-memory copy is always authoritative: a failed durable write is
// reported but does not lose the record. Corrupt or unreadable files are
// treated as absent so the process still starts.
type TokenStore struct {
	mu   sync.RWMutex
	dir  string
	recs map[domain.PlatformType]domain.CredentialRecord
}

// NewTokenStore opens (and creates, idempotently) the cache directory and
// loads any persisted records.
func NewTokenStore(dir string) (*TokenStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create token cache dir: %w", err)
	}

	s := &TokenStore{
		dir:  dir,
		recs: make(map[domain.PlatformType]domain.CredentialRecord),
	}
	s.loadAll()
	return s, nil
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

// Put replaces the record in memory and persists it. The returned error,
// if any, is a durable-write failure only: the new record is already
// authoritative in memory and the write will be retried on next mutation.
func (s *TokenStore) Put(platform domain.PlatformType, rec domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recs[platform] = rec
	return s.writeFile(platform, rec)
}

// Clear removes the record for a platform in memory and on disk.
func (s *TokenStore) Clear(platform domain.PlatformType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.recs, platform)
	if err := os.Remove(s.path(platform)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

func (s *TokenStore) path(platform domain.PlatformType) string {
	return filepath.Join(s.dir, string(platform)+".json")
}

func (s *TokenStore) loadAll() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Get().Warn().Err(err).Str("dir", s.dir).
			Msg("token cache unreadable, starting unauthenticated")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		platform := domain.PlatformType(entry.Name()[:len(entry.Name())-len(".json")])

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logger.Get().Warn().Err(err).Str("platform", string(platform)).
				Msg("credential file unreadable, treating as absent")
			continue
		}
		var rec domain.CredentialRecord
		if err := json.Unmarshal(data, &rec); err != nil || rec.AccessToken == "" {
			logger.Get().Warn().Str("platform", string(platform)).
				Msg("credential file corrupt, treating as absent")
			continue
		}
		rec.Platform = platform
		s.recs[platform] = rec
	}
}

// writeFile persists a record atomically: write a temp file, fsync-free
// rename into place, 0600 because the file contains secrets.
func (s *TokenStore) writeFile(platform domain.PlatformType, rec domain.CredentialRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	tmp := s.path(platform) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := os.Rename(tmp, s.path(platform)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}
