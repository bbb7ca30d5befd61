// Package persist keeps typed values in a kv.Store.
//
// Reads never fail: an absent, malformed or unreadable value yields the
// caller's default. Writes never fail either: errors are logged and the
// in-memory value stays authoritative for the session. There is no retry and
// no rollback.
package persist

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/catalogue/internal/kv"
)

// Read returns the value stored under key, or def when it cannot be used.
func Read[T any](store kv.Store, key string, def T, logger *zap.Logger) T {
	logger = orNop(logger)
	if store == nil {
		return def
	}

	raw, ok, err := store.Get(key)
	if err != nil {
		logger.Warn("read persisted value", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warn("decode persisted value", zap.String("key", key), zap.Error(err))
		return def
	}
	return value
}

// Write stores value under key. Failures are logged, never returned.
func Write[T any](store kv.Store, key string, value T, logger *zap.Logger) {
	logger = orNop(logger)
	if store == nil {
		return
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		logger.Warn("encode persisted value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := store.Set(key, string(encoded)); err != nil {
		logger.Warn("write persisted value", zap.String("key", key), zap.Error(err))
	}
}

// Cell is a value mirrored into a store under a fixed key.
type Cell[T any] struct {
	mu     sync.RWMutex
	store  kv.Store
	key    string
	value  T
	logger *zap.Logger
}

// NewCell reads the stored value once, falling back to def.
func NewCell[T any](store kv.Store, key string, def T, logger *zap.Logger) *Cell[T] {
	logger = orNop(logger)
	return &Cell[T]{
		store:  store,
		key:    key,
		value:  Read(store, key, def, logger),
		logger: logger,
	}
}

// Key returns the storage key.
func (c *Cell[T]) Key() string {
	return c.key
}

// Get returns the in-memory value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the in-memory value and writes it through.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()

	Write(c.store, c.key, value, c.logger)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
