// Package driven defines the outbound ports: interfaces the core services
// require from infrastructure adapters (token persistence, OAuth token
// endpoint exchange).
package driven
