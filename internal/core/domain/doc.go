// Package domain contains the core business entities for eventdeck:
// platforms, credential records, authorization attempts, capability
// descriptors, and the error taxonomy shared across all layers.
package domain
