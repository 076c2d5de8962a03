package driven

import (
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
)

// TokenStore persists credential records, one per platform. The store is
// the single writer for all records: providers hold a reference to it and
// never keep private token copies.
//
// Reads are in-memory fast and never touch the network. Implementations
// must serialize mutating access per platform.
type TokenStore interface {
	// Get returns the current record for a platform, or false if absent.
	// Corrupt persisted state is reported as absent, never as an error.
	Get(platform domain.PlatformType) (*domain.CredentialRecord, bool)

	// Put atomically replaces the record for a platform and persists it.
	// A durable-write failure is returned for reporting, but the new
	// record remains authoritative in memory: callers treat the error
	// as non-fatal and proceed.
	Put(platform domain.PlatformType, rec domain.CredentialRecord) error

	// Clear removes the record, both in memory and on disk. Used for
	// explicit logout and for irrecoverable refresh failures.
	Clear(platform domain.PlatformType) error
}
