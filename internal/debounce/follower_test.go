package debounce

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

// fakeClock fires timers synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestFollower_SettlesAfterDelay(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	f := New("", 300*time.Millisecond, clock, rec.record)

	f.Set("app")
	if f.Value() != "" {
		t.Fatalf("Value before delay = %q, want empty", f.Value())
	}
	if !f.Pending() {
		t.Fatalf("Pending = false, want true")
	}

	clock.Advance(299 * time.Millisecond)
	if f.Value() != "" {
		t.Fatalf("Value at 299ms = %q, want empty", f.Value())
	}

	clock.Advance(time.Millisecond)
	if f.Value() != "app" {
		t.Fatalf("Value at 300ms = %q, want app", f.Value())
	}
	if f.Pending() {
		t.Fatalf("Pending after settle = true, want false")
	}
	if diff := cmp.Diff([]string{"app"}, rec.got()); diff != "" {
		t.Fatalf("settled values mismatch (-want +got):\n%s", diff)
	}
}

func TestFollower_BurstYieldsOneTrailingUpdate(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	f := New("", 300*time.Millisecond, clock, rec.record)

	for _, v := range []string{"a", "ap", "app", "appl", "apple"} {
		f.Set(v)
		clock.Advance(100 * time.Millisecond)
		if live := clock.live(); live != 1 {
			t.Fatalf("live timers after Set(%q) = %d, want 1", v, live)
		}
	}
	if f.Value() != "" {
		t.Fatalf("Value mid-burst = %q, want empty", f.Value())
	}

	clock.Advance(200 * time.Millisecond)
	if diff := cmp.Diff([]string{"apple"}, rec.got()); diff != "" {
		t.Fatalf("settled values mismatch (-want +got):\n%s", diff)
	}
}

func TestFollower_SameInputDoesNotRestartWindow(t *testing.T) {
	clock := &fakeClock{}
	f := New("", 300*time.Millisecond, clock, nil)

	f.Set("veg")
	clock.Advance(200 * time.Millisecond)
	f.Set("veg")
	clock.Advance(100 * time.Millisecond)
	if f.Value() != "veg" {
		t.Fatalf("Value = %q, want veg (window must not restart)", f.Value())
	}
}

func TestFollower_StopCancelsPendingUpdate(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	f := New("", 300*time.Millisecond, clock, rec.record)

	f.Set("carrot")
	f.Stop()
	clock.Advance(time.Second)

	if f.Value() != "" {
		t.Fatalf("Value after Stop = %q, want empty", f.Value())
	}
	if len(rec.got()) != 0 {
		t.Fatalf("onSettle called after Stop: %v", rec.got())
	}
	if clock.live() != 0 {
		t.Fatalf("live timers after Stop = %d, want 0", clock.live())
	}

	f.Set("banana")
	clock.Advance(time.Second)
	if f.Value() != "" || f.Pending() {
		t.Fatalf("Set after Stop scheduled an update")
	}
}

func TestFollower_StaleCallbackIgnored(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	f := New("", 300*time.Millisecond, clock, rec.record)

	f.Set("a")
	// Capture the callback as if the timer had already fired but not yet
	// acquired the lock, then supersede it.
	clock.mu.Lock()
	stale := clock.timers[0].f
	clock.mu.Unlock()

	f.Set("ab")
	stale()
	if f.Value() != "" {
		t.Fatalf("stale callback applied value %q", f.Value())
	}

	clock.Advance(300 * time.Millisecond)
	if diff := cmp.Diff([]string{"ab"}, rec.got()); diff != "" {
		t.Fatalf("settled values mismatch (-want +got):\n%s", diff)
	}
}

func TestFollower_ZeroDelaySettlesImmediately(t *testing.T) {
	rec := &recorder{}
	f := New("", 0, &fakeClock{}, rec.record)

	f.Set("fruit")
	if f.Value() != "fruit" || f.Pending() {
		t.Fatalf("Value = %q pending %v, want fruit settled", f.Value(), f.Pending())
	}
	if diff := cmp.Diff([]string{"fruit"}, rec.got()); diff != "" {
		t.Fatalf("settled values mismatch (-want +got):\n%s", diff)
	}
}

func TestFollower_RealClock(t *testing.T) {
	defer goleak.VerifyNone(t)

	settled := make(chan string, 1)
	f := New("", 10*time.Millisecond, nil, func(v string) { settled <- v })
	f.Set("x")
	f.Set("xy")

	select {
	case v := <-settled:
		if v != "xy" {
			t.Fatalf("settled = %q, want xy", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("follower never settled")
	}
	if f.Input() != "xy" {
		t.Fatalf("Input = %q, want xy", f.Input())
	}
	f.Stop()
}

func TestFollower_RealClockStopBeforeFire(t *testing.T) {
	defer goleak.VerifyNone(t)

	called := make(chan string, 1)
	f := New("", 50*time.Millisecond, RealClock{}, func(v string) { called <- v })
	f.Set("late")
	f.Stop()

	select {
	case v := <-called:
		t.Fatalf("onSettle(%q) called after Stop", v)
	case <-time.After(150 * time.Millisecond):
	}
}
