package session

import "context"

// StorageKey is the fixed name of the single durable entry holding the raw
// bearer token.
const StorageKey = "token"

// Store persists the operator's bearer token across restarts.
// Implementations hold at most one entry, keyed by StorageKey.
type Store interface {
	// Get returns the stored token, or errors.ErrTokenNotFound when there is none
	Get(ctx context.Context) (string, error)

	// Set stores the token, overwriting any previous value
	Set(ctx context.Context, token string) error

	// Delete removes the stored token. Deleting a missing entry is not an error
	Delete(ctx context.Context) error
}
