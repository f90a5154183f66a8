package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period a keystroke burst must observe before
// a search intent is issued.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces a stream of text changes into a single emission per
// settled burst. Observe never emits synchronously; the emit callback runs
// on a timer goroutine after the quiet period elapses with no newer call.
type Debouncer struct {
	interval time.Duration
	emit     func(text string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	stopped bool
}

// NewDebouncer builds a debouncer that calls emit with the final text of
// each settled burst. A non-positive interval falls back to DefaultDebounce.
func NewDebouncer(interval time.Duration, emit func(text string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval, emit: emit}
}

// Observe records a text change and restarts the quiet-period timer. Any
// previously pending emission is superseded.
func (d *Debouncer) Observe(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = text
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	text := d.pending
	d.mu.Unlock()

	d.emit(text)
}

// Flush emits any pending text immediately instead of waiting out the quiet
// period. Used when the operator presses enter mid-burst.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	text := d.pending
	d.mu.Unlock()

	d.emit(text)
}

// Stop cancels any pending emission and rejects further input.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
