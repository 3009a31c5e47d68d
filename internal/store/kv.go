// Package store is the persistence port: a load/save-by-key contract over
// JSON-encoded collections, with a sqlite implementation for the app and
// an in-memory one for tests.
package store

import "context"

// KV persists one opaque value per key. Load's second return is false when
// the key has never been written.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}
