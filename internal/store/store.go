// Package store persists named JSON blobs. Each collection is written whole
// under its own key.
package store

import "context"

// Store is a key-value blob store.
type Store interface {
	// Get returns the blob stored under key. ok is false when nothing has
	// been written yet.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
