// Package tokenstore persists the bearer token across client restarts.
// The token is stored under a fixed key in a small SQLite database; a missing
// or unreadable value reads back as empty, which the session layer treats as
// "not authenticated". No expiry logic lives here: expiry is only ever
// detected by a rejected verification call.
package tokenstore

import "context"

// tokenKey is the fixed name the bearer token is stored under.
const tokenKey = "auth_token"

// Store is the durable holder of the bearer credential.
type Store interface {
	// Save persists the token, replacing any previous value.
	Save(ctx context.Context, token string) error
	// Read returns the stored token, or an empty string when none is
	// stored or the stored value is unreadable.
	Read(ctx context.Context) (string, error)
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
