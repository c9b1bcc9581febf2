// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"time"

	"github.com/aclements/go-viewport/resample"
)

// A Request is the payload of a resample request.
type Request struct {
	Domain resample.Domain
	Scale  float64
}

// Delays are the coalescing windows used by a Scheduler.
type Delays struct {
	// Continuous is used for requests from ongoing gestures.
	Continuous time.Duration
	// Discrete is used for one-off changes such as a click or
	// the end of a transition.
	Discrete time.Duration
}

// DefaultDelays resample a drag at most every 250ms and anything else
// at roughly frame rate.
var DefaultDelays = Delays{
	Continuous: 250 * time.Millisecond,
	Discrete:   time.Second / 60,
}

// SchedulerStats counts what a Scheduler has done.
type SchedulerStats struct {
	Notifies   int // calls to Notify
	Fires      int // requests handed to the fire function
	Superseded int // requests replaced before they fired
}

// A Scheduler coalesces bursts of requests. The first request starts a
// timer; later requests before the timer fires replace the payload but
// do not move the deadline. When the timer fires, only the most recent
// payload is delivered.
type Scheduler struct {
	clock  Clock
	delays Delays
	fire   func(Request)

	pending bool
	latest  Request
	timer   Timer
	gen     uint64
	stats   SchedulerStats
}

// NewScheduler returns a scheduler that calls fire with coalesced
// requests. Zero fields of delays are taken from DefaultDelays.
func NewScheduler(clock Clock, delays Delays, fire func(Request)) *Scheduler {
	if delays.Continuous == 0 {
		delays.Continuous = DefaultDelays.Continuous
	}
	if delays.Discrete == 0 {
		delays.Discrete = DefaultDelays.Discrete
	}
	return &Scheduler{clock: clock, delays: delays, fire: fire}
}

// Notify records req as the latest request and, if no timer is
// pending, starts one. The delay depends on whether the request comes
// from a continuous gesture.
func (s *Scheduler) Notify(req Request, continuous bool) {
	s.stats.Notifies++
	if s.pending {
		s.stats.Superseded++
		s.latest = req
		return
	}
	s.pending = true
	s.latest = req
	d := s.delays.Discrete
	if continuous {
		d = s.delays.Continuous
	}
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() { s.expire(gen) })
}

func (s *Scheduler) expire(gen uint64) {
	// A flushed window's timer may still run if its callback was
	// already queued when it was stopped.
	if !s.pending || gen != s.gen {
		return
	}
	s.run()
}

func (s *Scheduler) run() {
	req := s.latest
	s.pending = false
	s.latest = Request{}
	s.timer = nil
	s.stats.Fires++
	s.fire(req)
}

// Flush delivers the pending request now instead of waiting for its
// timer. It returns false if nothing was pending.
func (s *Scheduler) Flush() bool {
	if !s.pending {
		return false
	}
	s.timer.Stop()
	s.run()
	return true
}

// Pending reports whether a request is waiting for its timer.
func (s *Scheduler) Pending() bool {
	return s.pending
}

func (s *Scheduler) Delays() Delays {
	return s.delays
}

func (s *Scheduler) Stats() SchedulerStats {
	return s.stats
}
