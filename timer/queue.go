// Package timer is a cooperative timer queue driven by the frame loop.
// Nothing runs on its own goroutine: callbacks fire from Advance, on the
// caller's goroutine, in deadline order.
package timer

import (
	"cmp"
	"slices"
	"time"
)

// Handle identifies one repeating timer.
type Handle struct {
	q        *Queue
	seq      uint64
	interval time.Duration
	due      time.Duration
	fn       func()
	stopped  bool
}

// Stop cancels the timer. Safe to call more than once, and from inside
// the timer's own callback.
func (h *Handle) Stop() {
	if h == nil || h.stopped {
		return
	}
	h.stopped = true
	h.q.remove(h)
}

// Active reports whether the timer is still scheduled.
func (h *Handle) Active() bool {
	return h != nil && !h.stopped
}

// Queue holds repeating timers against a virtual clock.
type Queue struct {
	now    time.Duration
	seq    uint64
	timers []*Handle
}

// New returns an empty queue at time zero.
func New() *Queue {
	return &Queue{}
}

// Every schedules fn every interval, first firing one interval from now.
// A non-positive interval registers nothing and returns nil.
func (q *Queue) Every(interval time.Duration, fn func()) *Handle {
	if interval <= 0 || fn == nil {
		return nil
	}
	q.seq++
	h := &Handle{q: q, seq: q.seq, interval: interval, due: q.now + interval, fn: fn}
	q.timers = append(q.timers, h)
	return h
}

// Advance moves the clock forward by dt and fires every due callback in
// deadline order. Each timer fires at most once per call and is then
// rescheduled one interval after the new clock, so a stalled frame never
// turns into a burst of catch-up callbacks.
func (q *Queue) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	q.now += dt
	var due []*Handle
	for _, h := range q.timers {
		if h.due <= q.now {
			due = append(due, h)
		}
	}
	slices.SortFunc(due, func(a, b *Handle) int {
		if c := cmp.Compare(a.due, b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for _, h := range due {
		// An earlier callback may have stopped this one.
		if h.stopped {
			continue
		}
		h.due = q.now + h.interval
		h.fn()
	}
}

func (q *Queue) remove(h *Handle) {
	for i, t := range q.timers {
		if t == h {
			q.timers = append(q.timers[:i], q.timers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active timers.
func (q *Queue) Len() int {
	return len(q.timers)
}

// Now returns the virtual clock.
func (q *Queue) Now() time.Duration {
	return q.now
}

// StopAll cancels every timer.
func (q *Queue) StopAll() {
	for _, h := range append([]*Handle(nil), q.timers...) {
		h.Stop()
	}
}
