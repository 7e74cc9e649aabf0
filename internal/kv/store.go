// Package kv provides namespaced key-value snapshot storage for site state.
package kv

import "context"

// Store is the persistence adapter for serialized site state. Values are
// opaque JSON blobs; one key per collection. Last write wins, no
// versioning.
type Store interface {
	// Load returns the stored value for key, or ok=false when the key has
	// never been written.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Save overwrites the value for key.
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}
