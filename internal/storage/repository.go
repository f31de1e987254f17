// ABOUTME: KV interface for durable per-device dashboard state.
// ABOUTME: Backends: SQLite (default), Badger, Charm Cloud, and in-memory.
package storage

import "errors"

// ErrNotFound is returned by Get when a key has no stored value.
var ErrNotFound = errors.New("not found")

// KV is a durable string-keyed byte store.
// This interface allows swapping implementations (e.g., for testing).
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Lifecycle
	Close() error
}
