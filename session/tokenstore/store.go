// Package tokenstore persists the short-lived access token between process
// runs. The store holds at most one token under a fixed key; it is the single
// source of truth for whether a session is believed active.
package tokenstore

// Store is the persistence contract for the access token
type Store interface {
	// Get returns the stored token, or "" when no token is persisted
	Get() (string, error)
	// Set replaces the stored token
	Set(token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}
