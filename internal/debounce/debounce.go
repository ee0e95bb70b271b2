// Package debounce coalesces bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	wait time.Duration
	fn   func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	running bool
}

// New returns a Debouncer that runs fn once wait has passed without another
// Trigger. A non-positive wait defaults to 100ms.
func New(wait time.Duration, fn func()) *Debouncer {
	if wait <= 0 {
		wait = 100 * time.Millisecond
	}
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger (re)starts the wait. Calls made before it elapses replace the
// pending one.
func (d *Debouncer) Trigger() {
	if d == nil {
		return
	}

	d.mu.Lock()
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.wait, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.wait)
	d.mu.Unlock()
}

// Stop drops a pending call without running it.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}

// Flush runs a pending call now. It reports whether one ran.
func (d *Debouncer) Flush() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	if !d.pending || d.running {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	return d.run()
}

func (d *Debouncer) onTimer() {
	d.run()
}

func (d *Debouncer) run() bool {
	d.mu.Lock()
	if d.running {
		// A call is in flight; try again once the wait passes.
		if d.timer != nil {
			d.timer.Reset(d.wait)
		}
		d.mu.Unlock()
		return false
	}
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.pending = false
	d.running = true
	d.mu.Unlock()

	d.fn()

	d.mu.Lock()
	d.running = false
	if d.pending && d.timer != nil {
		d.timer.Reset(d.wait)
	}
	d.mu.Unlock()
	return true
}

// Func wraps fn so that only the last argument of a burst is delivered.
// cancel drops whatever is pending.
func Func[T any](wait time.Duration, fn func(T)) (call func(T), cancel func()) {
	var (
		mu   sync.Mutex
		last T
	)
	d := New(wait, func() {
		mu.Lock()
		v := last
		mu.Unlock()
		fn(v)
	})
	call = func(v T) {
		mu.Lock()
		last = v
		mu.Unlock()
		d.Trigger()
	}
	return call, d.Stop
}
