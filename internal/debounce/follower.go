// Package debounce provides a trailing-edge debounced value.
package debounce

import (
	"sync"
	"time"
)

// Follower trails an input value, adopting it once the input has been stable
// for the configured delay. At most one update is pending at any time.
type Follower[T comparable] struct {
	mu       sync.Mutex
	clock    Clock
	delay    time.Duration
	input    T
	value    T
	pending  Timer
	gen      uint64
	stopped  bool
	onSettle func(T)
}

// New returns a Follower whose input and trailing value both start at initial.
// onSettle, when non-nil, is called with each settled value. With a real clock
// it runs on the timer goroutine.
func New[T comparable](initial T, delay time.Duration, clock Clock, onSettle func(T)) *Follower[T] {
	if clock == nil {
		clock = RealClock{}
	}
	return &Follower[T]{
		clock:    clock,
		delay:    delay,
		input:    initial,
		value:    initial,
		onSettle: onSettle,
	}
}

// Set records a new input, cancelling any pending update and restarting the
// delay window. Setting the current input again changes nothing.
func (f *Follower[T]) Set(v T) {
	f.mu.Lock()
	if f.stopped || v == f.input {
		f.mu.Unlock()
		return
	}
	f.input = v
	f.cancelLocked()

	if f.delay <= 0 {
		f.value = v
		cb := f.onSettle
		f.mu.Unlock()
		if cb != nil {
			cb(v)
		}
		return
	}

	gen := f.gen
	f.pending = f.clock.AfterFunc(f.delay, func() { f.fire(gen) })
	f.mu.Unlock()
}

// Value returns the trailing value.
func (f *Follower[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Input returns the most recent input.
func (f *Follower[T]) Input() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Pending reports whether an update is scheduled.
func (f *Follower[T]) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending != nil
}

// Stop cancels any pending update. No update is delivered after Stop returns
// and later calls to Set are ignored.
func (f *Follower[T]) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	f.cancelLocked()
}

func (f *Follower[T]) cancelLocked() {
	// Bumping gen invalidates a callback that already left the timer but has
	// not yet taken the lock.
	f.gen++
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}

func (f *Follower[T]) fire(gen uint64) {
	f.mu.Lock()
	if f.stopped || gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.pending = nil
	f.value = f.input
	v, cb := f.value, f.onSettle
	f.mu.Unlock()

	if cb != nil {
		cb(v)
	}
}
