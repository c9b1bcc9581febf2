// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package explore

import "time"

// A Queue is a clock whose timers fire in any order Path chooses.
//
// It models an event loop that runs callbacks on one goroutine. A timer
// that expires is first posted to the loop and runs later, in the order
// it was posted. Stopping a posted timer fails, so its callback still
// runs. Delays are ignored: any armed timer may expire next.
type Queue struct {
	armed  []*Timer
	posted []*Timer
}

// A Timer is a callback scheduled on a Queue.
type Timer struct {
	q *Queue
	f func()
}

// AfterFunc arms a timer that calls f.
func (q *Queue) AfterFunc(d time.Duration, f func()) *Timer {
	t := &Timer{q, f}
	q.armed = append(q.armed, t)
	return t
}

// Stop disarms t. It reports whether t was still armed. Once t has been
// posted, Stop returns false and t's callback will still run.
func (t *Timer) Stop() bool {
	for i, a := range t.q.armed {
		if a == t {
			t.q.armed = append(t.q.armed[:i], t.q.armed[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of timers that are armed or posted.
func (q *Queue) Len() int {
	return len(q.armed) + len(q.posted)
}

// Step lets p choose either an armed timer to expire or the oldest
// posted callback to run. It returns false if nothing is pending.
func (q *Queue) Step(p *Path) bool {
	n := len(q.armed)
	if len(q.posted) > 0 {
		n++
	}
	if n == 0 {
		return false
	}
	i := p.Choose(n)
	if i < len(q.armed) {
		t := q.armed[i]
		q.armed = append(q.armed[:i], q.armed[i+1:]...)
		q.posted = append(q.posted, t)
		return true
	}
	t := q.posted[0]
	q.posted = q.posted[1:]
	t.f()
	return true
}

// Drain steps q until nothing is pending, including timers armed by
// the callbacks it runs.
func (q *Queue) Drain(p *Path) {
	for q.Step(p) {
	}
}
