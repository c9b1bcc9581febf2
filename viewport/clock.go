// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"context"
	"sort"
	"sync"
	"time"
)

// A Clock schedules deferred callbacks. Callbacks must run on the
// same logical thread as everything else in a Viewport.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// A Timer is a pending callback from a Clock.
type Timer interface {
	// Stop prevents the callback from running. It returns false
	// if the callback already ran or was already stopped.
	Stop() bool
}

// ManualClock is a Clock whose time only moves when Advance is called.
// Callbacks run synchronously inside Advance, in deadline order, with
// ties broken by the order they were scheduled.
type ManualClock struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	when    time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now returns the time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &manualTimer{when: c.now + d, seq: c.seq, f: f}
	c.seq++
	c.timers = append(c.timers, t)
	return t
}

// Pending returns the number of callbacks waiting to run.
func (c *ManualClock) Pending() int {
	c.prune()
	return len(c.timers)
}

// Advance moves the clock forward by d, running every callback that
// comes due. Callbacks scheduled by other callbacks also run if they
// come due before the new time.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		t := c.next()
		if t == nil || t.when > target {
			break
		}
		c.now = t.when
		t.fired = true
		t.f()
	}
	c.now = target
}

// Drain runs callbacks until none are pending, advancing the clock to
// each deadline in turn.
func (c *ManualClock) Drain() {
	for {
		t := c.next()
		if t == nil {
			return
		}
		if t.when > c.now {
			c.now = t.when
		}
		t.fired = true
		t.f()
	}
}

func (c *ManualClock) prune() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live
}

func (c *ManualClock) next() *manualTimer {
	c.prune()
	if len(c.timers) == 0 {
		return nil
	}
	sort.Slice(c.timers, func(i, j int) bool {
		a, b := c.timers[i], c.timers[j]
		if a.when != b.when {
			return a.when < b.when
		}
		return a.seq < b.seq
	})
	return c.timers[0]
}

// A Loop runs functions one at a time on the goroutine that calls Run.
// It is the event loop that serializes gestures and timer callbacks
// for a Viewport driven in real time.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

// NewLoop returns an idle Loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues f to run on the loop. It is safe to call from any
// goroutine, including the loop itself, and never blocks.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.queue = append(l.queue, f)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run runs posted functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()
		for _, f := range batch {
			f()
		}
		if len(batch) > 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Clock returns a real-time Clock whose callbacks are posted to l.
func (l *Loop) Clock() Clock {
	return loopClock{l}
}

type loopClock struct {
	l *Loop
}

func (c loopClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() { c.l.Post(f) })
}
