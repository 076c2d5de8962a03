package services

import (
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driven"
)

// DeriveAuthStatus classifies one platform's credential state. This is a
// pure read: expiry is judged with zero skew so the answer reflects what a
// caller would observe right now, and it never triggers a refresh.
func DeriveAuthStatus(configured bool, store driven.TokenStore, platform domain.PlatformType) domain.AuthStatus {
	if !configured {
		return domain.AuthStatusUnconfigured
	}
	rec, ok := store.Get(platform)
	if !ok {
		return domain.AuthStatusUnauthenticated
	}
	if rec.Valid(0) {
		return domain.AuthStatusAuthenticated
	}
	return domain.AuthStatusExpired
}
