package store

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is durable key-value storage for client state, the moral
// equivalent of the browser's localStorage: it persists across runs
// within the same profile directory.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
