package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/catalogue/internal/catalog"
)

// Snapshot represents the latest catalogue load available to the UI.
type Snapshot struct {
	Items      []catalog.Item
	Loaded     bool // false until the first load attempt finishes
	LoadedAt   time.Time
	LastError  error
	Generation uint64 // bumped on every Update
	Failures   int    // consecutive failed loads
}

// Loading reports whether the first load is still in flight.
func (s Snapshot) Loading() bool {
	return !s.Loaded
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the outcome of a load. When err is non-nil the previous items
// are kept (an empty list on the first load) and the error is recorded.
func (s *Store) Update(items []catalog.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loaded = true
	s.snapshot.LoadedAt = time.Now()
	s.snapshot.Generation++

	if err != nil {
		if s.snapshot.Items == nil {
			s.snapshot.Items = []catalog.Item{}
		}
		s.snapshot.LastError = err
		s.snapshot.Failures++
		return
	}

	s.snapshot.Items = cloneItems(items)
	s.snapshot.LastError = nil
	s.snapshot.Failures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.Items != nil {
		snap.Items = cloneItems(s.snapshot.Items)
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []catalog.Item) []catalog.Item {
	if items == nil {
		return []catalog.Item{}
	}
	return slices.Clone(items)
}
