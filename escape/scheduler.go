// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package escape

import (
	"sync"
	"time"

	"github.com/jongio/escapehatch/clock"
)

// Entry is one scheduled action and the delay that follows it.
type Entry struct {
	Action func()
	Delay  time.Duration
}

// Scheduler runs timed actions on a Clock.
type Scheduler struct {
	clock clock.Clock
}

// NewScheduler returns a Scheduler on c, or on the real clock when c is nil.
func NewScheduler(c clock.Clock) *Scheduler {
	if c == nil {
		c = clock.Real()
	}
	return &Scheduler{clock: c}
}

// Clock returns the clock the scheduler runs on.
func (s *Scheduler) Clock() clock.Clock {
	return s.clock
}

// Handle controls a scheduled sequence or single timer.
type Handle struct {
	mu        sync.Mutex
	timer     clock.Timer
	cancelled bool
	done      bool
}

// Cancel stops any pending callback. Callbacks that have not started yet
// never run after Cancel returns. It is safe to call more than once.
func (h *Handle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelled = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// Cancelled reports whether Cancel was called.
func (h *Handle) Cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

// Done reports whether the handle ran to completion.
func (h *Handle) Done() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.done
}

// arm installs the next timer unless the handle was cancelled.
func (h *Handle) arm(c clock.Clock, d time.Duration, f func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelled {
		return
	}
	h.timer = c.AfterFunc(d, f)
}

// claim marks the pending timer as consumed and reports whether the callback
// may proceed.
func (h *Handle) claim() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.timer = nil
	return !h.cancelled
}

func (h *Handle) finish() {
	h.mu.Lock()
	h.done = true
	h.mu.Unlock()
}

// After runs f once after d.
func (s *Scheduler) After(d time.Duration, f func()) *Handle {
	h := &Handle{}
	h.arm(s.clock, d, func() {
		if !h.claim() {
			return
		}
		h.finish()
		f()
	})
	return h
}

// Schedule runs the first entry's action immediately, then each following
// action after the previous entry's delay. Once the last entry's delay has
// elapsed, done is called (when non-nil).
func (s *Scheduler) Schedule(entries []Entry, done func()) *Handle {
	h := &Handle{}
	s.step(h, entries, 0, done)
	return h
}

func (s *Scheduler) step(h *Handle, entries []Entry, i int, done func()) {
	if i >= len(entries) {
		h.finish()
		if done != nil {
			done()
		}
		return
	}

	if entries[i].Action != nil {
		entries[i].Action()
	}
	h.arm(s.clock, entries[i].Delay, func() {
		if !h.claim() {
			return
		}
		s.step(h, entries, i+1, done)
	})
}
