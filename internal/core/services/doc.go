// Package services implements the core use cases: the OAuth2 flow engine,
// the refreshing client wrapper, and the provider registry. Services depend
// only on domain types and ports; all I/O lives behind driven adapters.
package services
