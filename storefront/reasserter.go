package storefront

import (
	"sync"
	"sync/atomic"
	"time"
)

// Reasserter re-asserts desired page state after the host platform mutates
// the layout underneath us. Change notifications are debounced, and the
// rendering-in-progress guard keeps a re-assert from triggering itself
// through the very layout change it causes.
type Reasserter struct {
	mu       sync.Mutex
	timer    *time.Timer
	delay    time.Duration
	reassert func()

	rendering atomic.Bool
}

func NewReasserter(delay time.Duration, reassert func()) *Reasserter {
	return &Reasserter{
		delay:    delay,
		reassert: reassert,
	}
}

// NotifyChange records one external layout change. Bursts within the
// debounce window collapse into a single re-assert.
func (r *Reasserter) NotifyChange() {
	if r.rendering.Load() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.run)
}

func (r *Reasserter) run() {
	if !r.rendering.CompareAndSwap(false, true) {
		return
	}
	defer r.rendering.Store(false)

	r.reassert()
}

// Stop cancels any pending re-assert. An already running one finishes.
func (r *Reasserter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
