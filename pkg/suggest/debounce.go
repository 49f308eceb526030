package suggest

import (
	"sync"
	"time"

	"github.com/bastiangx/citycomplete/internal/utils"
)

// Debouncer coalesces bursts of queries into one call made after a quiet
// period. Each Schedule cancels whatever the previous one registered.
type Debouncer struct {
	delay  time.Duration
	minLen int
	fire   func(query string)
	clear  func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// Task is the cancel token for one scheduled call.
type Task struct {
	d   *Debouncer
	gen uint64
}

// Cancel stops the call if it has not fired and nothing superseded it yet.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.d.mu.Lock()
	if t.gen == t.d.gen {
		t.d.stopLocked()
	}
	t.d.mu.Unlock()
}

// NewDebouncer creates a debouncer calling fire after delay, or clear right
// away for queries shorter than minLen runes. clear may be nil.
func NewDebouncer(delay time.Duration, minLen int, fire func(query string), clear func()) *Debouncer {
	return &Debouncer{
		delay:  delay,
		minLen: minLen,
		fire:   fire,
		clear:  clear,
	}
}

// Schedule registers query to fire after the delay and returns its cancel
// token. A query below the minimum length cancels anything pending, calls
// clear synchronously and returns nil.
func (d *Debouncer) Schedule(query string) *Task {
	d.mu.Lock()
	d.stopLocked()

	if utils.RuneLen(query) < d.minLen {
		d.mu.Unlock()
		if d.clear != nil {
			d.clear()
		}
		return nil
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.run(gen, query) })
	d.mu.Unlock()
	return &Task{d: d, gen: gen}
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.stopLocked()
	d.mu.Unlock()
}

// Pending reports whether a call is waiting for its timer.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// run is the timer callback. A timer that fired while being stopped finds a
// newer generation and does nothing.
func (d *Debouncer) run(gen uint64, query string) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fire(query)
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
