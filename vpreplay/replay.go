// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-viewport/resample"
	"github.com/aclements/go-viewport/viewport"
	"github.com/google/uuid"
)

// A driver runs viewport code on the viewport's thread and lets time
// pass between commands.
type driver interface {
	Clock() viewport.Clock
	Do(f func())
	Wait(d time.Duration)
	// Finish delivers any pending resamples.
	Finish(v *viewport.Viewport)
	Now() time.Duration
}

// virtualDriver replays in virtual time. wait commands return
// immediately.
type virtualDriver struct {
	clock *viewport.ManualClock
}

func newVirtualDriver() *virtualDriver {
	return &virtualDriver{new(viewport.ManualClock)}
}

func (d *virtualDriver) Clock() viewport.Clock { return d.clock }
func (d *virtualDriver) Do(f func()) { f() }
func (d *virtualDriver) Wait(t time.Duration) { d.clock.Advance(t) }
func (d *virtualDriver) Finish(v *viewport.Viewport) { d.clock.Drain() }
func (d *virtualDriver) Now() time.Duration { return d.clock.Now() }

// loopDriver replays in real time. The viewport lives on a Loop; the
// script runs on the caller's goroutine and posts each command to it.
type loopDriver struct {
	loop   *viewport.Loop
	start  time.Time
	cancel context.CancelFunc
	done   chan error
}

func newLoopDriver() *loopDriver {
	ctx, cancel := context.WithCancel(context.Background())
	d := &loopDriver{
		loop:   viewport.NewLoop(),
		start:  time.Now(),
		cancel: cancel,
		done:   make(chan error, 1),
	}
	go func() { d.done <- d.loop.Run(ctx) }()
	return d
}

func (d *loopDriver) Clock() viewport.Clock { return d.loop.Clock() }

func (d *loopDriver) Do(f func()) {
	done := make(chan struct{})
	d.loop.Post(func() {
		defer close(done)
		f()
	})
	<-done
}

func (d *loopDriver) Wait(t time.Duration) { time.Sleep(t) }

func (d *loopDriver) Finish(v *viewport.Viewport) {
	d.Do(v.Flush)
	d.cancel()
	<-d.done
}

func (d *loopDriver) Now() time.Duration { return time.Since(d.start) }

// A Replay applies script commands to a Viewport and reports every
// new sample set.
type Replay struct {
	vp     *viewport.Viewport
	drv    driver
	rep    Reporter
	units  map[string]*unitSet
	events int
}

// NewReplay returns a replay of a viewport configured by cfg. opts.Clock
// is replaced by drv's clock.
func NewReplay(cfg viewport.Config, opts viewport.Options, drv driver, rep Reporter) (*Replay, error) {
	opts.Clock = drv.Clock()
	vp, err := viewport.NewViewport(cfg, opts)
	if err != nil {
		return nil, err
	}
	r := &Replay{vp: vp, drv: drv, rep: rep, units: make(map[string]*unitSet)}
	for _, a := range []*viewport.Axis{vp.X, vp.Y} {
		a := a
		r.units[a.Name()] = newUnitSet()
		a.OnSamplesChanged(viewport.SamplesListenerFunc(func() { r.report(a) }))
	}
	return r, nil
}

// Viewport returns the replayed viewport. It must only be used from
// within Do.
func (r *Replay) Viewport() *viewport.Viewport { return r.vp }

// Do runs f on the viewport's thread.
func (r *Replay) Do(f func()) { r.drv.Do(f) }

// Events returns the number of sample sets reported.
func (r *Replay) Events() int { return r.events }

// Run executes cmds and then delivers pending resamples.
func (r *Replay) Run(cmds []Command) {
	for _, cmd := range cmds {
		r.Exec(cmd)
	}
	r.drv.Finish(r.vp)
}

// Exec executes a single command.
func (r *Replay) Exec(cmd Command) {
	if cmd.Op == OpWait {
		r.drv.Wait(cmd.Wait)
		r.status()
		return
	}
	r.drv.Do(func() {
		if cmd.Op == OpFlush {
			r.vp.Flush()
			return
		}
		if cmd.Op == OpPrint {
			r.print()
			return
		}
		a := r.vp.Axis(cmd.Axis)
		s := a.State()
		switch cmd.Op {
		case OpSize:
			a.SetCollectionSize(int(cmd.Args[0]))
		case OpTransform:
			s.ApplyTransform(cmd.Args[0], cmd.Args[1], cmd.Continuous)
		case OpGesture:
			s.Gesture(cmd.Args[0], cmd.Args[1], cmd.Continuous)
		case OpZoom:
			s.ZoomAt(cmd.Args[0], s.Pixels()/2, cmd.Continuous)
		case OpPan:
			s.PanBy(cmd.Args[0], cmd.Continuous)
		case OpScale:
			s.ScaleTo(cmd.Args[0], cmd.Continuous)
		case OpKnob:
			a.StepZoom(int(cmd.Args[0]))
		default:
			panic(fmt.Sprintf("line %d: unhandled op %d", cmd.Line, cmd.Op))
		}
	})
	r.status()
}

func (r *Replay) status() {
	var x, y resample.Domain
	r.drv.Do(func() {
		x, y = r.vp.X.State().Domain(), r.vp.Y.State().Domain()
	})
	r.rep.Status("%v x %v y %v", r.drv.Now(), x, y)
}

func (r *Replay) report(a *viewport.Axis) {
	r.events++
	ss := a.Samples()
	d, _ := a.SampledDomain()
	added, reused := r.units[a.Name()].update(ss)
	fmt.Fprintf(r.rep, "%v %s: %v %d samples (%s) units +%d =%d%s\n",
		r.drv.Now(), a.Name(), d, len(ss), percent(resample.SampleRate(d, a.Budget())), added, reused, gapSummary(ss))
}

func (r *Replay) print() {
	for _, a := range []*viewport.Axis{r.vp.X, r.vp.Y} {
		s := a.State()
		n, _ := a.CollectionSize()
		t := s.Transform()
		fmt.Fprintf(r.rep, "%s: size %d scale %g translate %g extent %v domain %v knob %.0f/%g: %s\n",
			a.Name(), n, t.Scale, t.Translate, s.Extent(), s.Domain(),
			a.Knob().Position(t.Scale), a.Knob().Groove-a.Knob().Knob, viewport.Title(a.SampleRate()))
		st := a.Scheduler().Stats()
		fmt.Fprintf(r.rep, "%s: %d requests, %d resamples, %d superseded, %d units\n",
			a.Name(), st.Notifies, st.Fires, st.Superseded, len(r.units[a.Name()].ids))
	}
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// gapSummary describes the spacing of sample indices. Uniform random
// representatives give gaps spread around the bucket width rather
// than a fixed stride.
func gapSummary(ss []resample.Sample) string {
	if len(ss) < 2 {
		return ""
	}
	gaps := make([]float64, len(ss)-1)
	for i := range gaps {
		gaps[i] = float64(ss[i+1].Index - ss[i].Index)
	}
	lo, hi := stats.Bounds(gaps)
	return fmt.Sprintf(" gaps %.1f [%g, %g]", stats.Mean(gaps), lo, hi)
}

// A unitSet tracks the identity of drawable units across sample sets.
// A unit keeps its ID for as long as its index stays in the sample
// set.
type unitSet struct {
	ids map[int]uuid.UUID
}

func newUnitSet() *unitSet {
	return &unitSet{ids: make(map[int]uuid.UUID)}
}

func (u *unitSet) update(ss []resample.Sample) (added, reused int) {
	next := make(map[int]uuid.UUID, len(ss))
	for _, s := range ss {
		if id, ok := u.ids[s.Index]; ok {
			next[s.Index] = id
			reused++
		} else {
			next[s.Index] = uuid.New()
			added++
		}
	}
	u.ids = next
	return
}
