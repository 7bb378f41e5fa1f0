// Package profile stores small per-user dashboard state (current profile id,
// cached profile payload) in the client's local database. Every value
// carries its write time; reads treat values older than the configured TTL
// as absent, so stale cached state expires instead of living forever.
package profile

import "context"

// Well-known keys.
const (
	KeyCurrentProfileID = "current_profile_id"
	KeyProfileData      = "profile_data"
)

type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent
	// or its value has aged past the repository's TTL.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set upserts the value and refreshes its write time.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key; absent keys are a no-op.
	Delete(ctx context.Context, key string) error

	// Clear wipes all stored profile state.
	Clear(ctx context.Context) error
}
