package reader

import (
	"sync"
	"time"
)

// DefaultDebounce is the input quiescence window for slider events. A
// continuous drag fires a change event per step; forwarding each one would
// flood the URL mirror with intermediate pages.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer forwards the most recent value only after the input has been
// quiet for the configured delay. Each new value resets the timer and
// discards the stale pending forward.
type Debouncer struct {
	delay time.Duration
	fn    func(int)

	mu      sync.Mutex
	timer   *time.Timer
	pending int
	armed   bool
}

// NewDebouncer creates a debouncer that calls fn with the last submitted
// value after delay of quiescence. A non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration, fn func(int)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Submit records a new value, resetting the quiescence timer.
func (d *Debouncer) Submit(v int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = v
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.mu.Unlock()
	d.fn(v)
}

// Stop discards any pending forward. The debouncer remains usable.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush forwards any pending value immediately instead of waiting out the
// quiescence window.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}
