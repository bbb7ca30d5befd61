// Package favourites tracks the item ids a user has starred.
package favourites

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/catalogue/internal/kv"
	"github.com/five82/catalogue/internal/persist"
)

// StorageKey is the kv key the set persists under.
const StorageKey = "favourites"

// Set is a persisted set of item ids. Membership is the contract; the stored
// order is insertion order and carries no meaning.
type Set struct {
	mu    sync.RWMutex
	cell  *persist.Cell[[]int64]
	index map[int64]struct{}
}

// Open loads the set from store. Unreadable data yields an empty set.
func Open(store kv.Store, logger *zap.Logger) *Set {
	cell := persist.NewCell(store, StorageKey, []int64{}, logger)

	ids := dedupe(cell.Get())
	s := &Set{cell: cell, index: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
	if len(ids) != len(cell.Get()) {
		cell.Set(ids)
	}
	return s
}

// Has reports whether id is a favourite.
func (s *Set) Has(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Toggle removes id when present and adds it otherwise. It returns the new
// membership and writes the set through to storage.
func (s *Set) Toggle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := slices.Clone(s.cell.Get())
	_, member := s.index[id]
	if member {
		delete(s.index, id)
		ids = slices.DeleteFunc(ids, func(v int64) bool { return v == id })
	} else {
		s.index[id] = struct{}{}
		ids = append(ids, id)
	}
	s.cell.Set(ids)
	return !member
}

// IDs returns the members in insertion order.
func (s *Set) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cell.Get())
}

// Len returns the number of favourites.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
