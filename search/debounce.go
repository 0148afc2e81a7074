package search

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single task run. It holds
// at most one pending task: each Trigger replaces any previously scheduled
// run, so only the last trigger within the delay window fires. This makes
// the "new event invalidates the pending scan" contract explicit instead
// of leaning on platform timer semantics.
type Debouncer struct {
	delay time.Duration
	task  func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer that runs task once per quiet period
// of the given delay.
func NewDebouncer(delay time.Duration, task func()) *Debouncer {
	return &Debouncer{delay: delay, task: task}
}

// Trigger schedules the task after the delay, replacing any pending run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.task)
}

// Stop cancels any pending run. A task already started is not interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
