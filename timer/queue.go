// Package timer provides a deferred single-shot callback queue advanced by the
// game loop.
package timer

import "sort"

type entry struct {
	at  float64
	seq uint64
	fn  func()
}

// Queue runs callbacks once their fire time has passed. It is not safe for
// concurrent use; the game loop owns it.
type Queue struct {
	now     float64
	seq     uint64
	entries []entry
}

func NewQueue() *Queue {
	return &Queue{}
}

// After schedules fn to run once delay seconds from now.
func (q *Queue) After(delay float64, fn func()) {
	if q == nil || fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	q.seq++
	q.entries = append(q.entries, entry{at: q.now + delay, seq: q.seq, fn: fn})
}

// Advance moves the clock forward by dt and runs every due callback in fire
// time order. Callbacks scheduled while advancing wait for the next call.
func (q *Queue) Advance(dt float64) {
	if q == nil {
		return
	}
	if dt > 0 {
		q.now += dt
	}
	if len(q.entries) == 0 {
		return
	}

	due := make([]entry, 0, len(q.entries))
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.at <= q.now {
			due = append(due, e)
		} else {
			kept = append(kept, e)
		}
	}
	q.entries = kept
	if len(due) == 0 {
		return
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, e := range due {
		e.fn()
	}
}

// Now returns the queue's clock in seconds.
func (q *Queue) Now() float64 {
	if q == nil {
		return 0
	}
	return q.now
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.entries)
}
