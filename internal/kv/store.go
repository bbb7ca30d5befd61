// Package kv provides the durable key-value capability catalogue persists
// user state into. Values are opaque strings; callers own serialization.
package kv

import "errors"

// Store errors.
var (
	ErrUnavailable   = errors.New("storage unavailable")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrEmptyKey      = errors.New("key cannot be empty")
)

// Store is a get/set-by-key string store. There is no atomicity across keys.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// Closer is implemented by stores holding OS resources.
type Closer interface {
	Close() error
}

// Close releases s when it holds resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
