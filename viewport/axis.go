// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewport drives adaptive sampling of large ordered
// collections from an interactive zoom/pan viewport.
//
// Each Axis ties together the pieces of the pipeline:
//
//	gesture → TransformState → Scheduler → resample.Resampler → samples event
//
// A gesture changes the axis transform, which publishes the new
// visible domain. The scheduler coalesces bursts of domain changes and
// hands the latest one to the resampler, which publishes a samples
// event only if the sample set actually changed.
//
// Everything runs on a single logical thread. The only deferred work
// is the scheduler's timers, which are created through a Clock: use a
// ManualClock to drive a Viewport in virtual time, or a Loop's clock
// to drive it in real time from a single goroutine.
package viewport

import (
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"

	"github.com/aclements/go-viewport/resample"
	"github.com/google/uuid"
)

// Options are the runtime collaborators of a Viewport or Axis.
type Options struct {
	// Clock schedules coalesced resamples. It must be set.
	Clock Clock

	// Rand picks random bucket representatives. nil means a
	// time-seeded source. Both axes of a Viewport share it.
	Rand *rand.Rand

	// Logger receives extent changes and, if Verbose is set,
	// every resample. nil discards logging.
	Logger  *log.Logger
	Verbose bool
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(ioutil.Discard, "", 0)
	}
	return o.Logger
}

// An Axis is one sampled dimension of a viewport.
type Axis struct {
	name    string
	id      uuid.UUID
	budget  int
	logger  *log.Logger
	verbose bool

	state   *TransformState
	extent  *ExtentController
	sched   *Scheduler
	res     *resample.Resampler
	knob    *ZoomKnob
	samples SamplesFeed
}

// NewAxis returns an axis configured by cfg. name identifies it in
// logs.
func NewAxis(name string, cfg AxisConfig, opts Options) (*Axis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s axis: %w", name, err)
	}
	if opts.Clock == nil {
		return nil, fmt.Errorf("%s axis: no clock", name)
	}
	res, err := resample.New(cfg.Budget(), opts.Rand)
	if err != nil {
		return nil, fmt.Errorf("%s axis: %w", name, err)
	}
	state := NewTransformState(cfg.Pixels, cfg.Policy())
	knob, err := NewZoomKnob(state.Extent())
	if err != nil {
		return nil, fmt.Errorf("%s axis: %w", name, err)
	}
	a := &Axis{
		name:    name,
		id:      uuid.New(),
		budget:  cfg.Budget(),
		logger:  opts.logger(),
		verbose: opts.Verbose,
		state:   state,
		extent:  NewExtentController(state),
		res:     res,
		knob:    knob,
	}
	a.sched = NewScheduler(opts.Clock, cfg.Delays(), a.resample)
	state.OnDomainChanged(DomainListenerFunc(func(ev DomainEvent) {
		a.sched.Notify(Request{ev.Domain, ev.Scale}, ev.Continuous)
	}))
	a.extent.OnExtentChanged(ExtentListenerFunc(func(ev ExtentEvent) {
		if err := a.knob.SetExtent(ev.Extent); err != nil {
			panic(fmt.Sprintf("%s axis: %v", a.name, err))
		}
		a.logger.Printf("%s axis %s: collection size %d, scale extent %v", a.name, a.id, ev.Size, ev.Extent)
	}))
	return a, nil
}

func (a *Axis) resample(req Request) {
	n, _ := a.extent.Size()
	if !a.res.Resample(req.Domain, n) {
		if a.verbose {
			a.logger.Printf("%s axis: domain %v unchanged, skipping resample", a.name, req.Domain)
		}
		return
	}
	if a.verbose {
		a.logger.Printf("%s axis: resampled %v at scale %g: %d samples", a.name, req.Domain, req.Scale, a.res.Len())
	}
	a.samples.Publish()
}

func (a *Axis) Name() string { return a.name }

// ID uniquely identifies this axis instance.
func (a *Axis) ID() uuid.UUID { return a.id }

// Budget returns the maximum number of samples on this axis.
func (a *Axis) Budget() int { return a.budget }

func (a *Axis) State() *TransformState { return a.state }

func (a *Axis) Scheduler() *Scheduler { return a.sched }

func (a *Axis) Knob() *ZoomKnob { return a.knob }

// Samples returns the current sample set. The caller must not modify
// it.
func (a *Axis) Samples() []resample.Sample {
	return a.res.Samples()
}

// SampledDomain returns the domain the current samples were computed
// for. It lags State().Domain() while a resample is pending.
func (a *Axis) SampledDomain() (resample.Domain, bool) {
	return a.res.Domain()
}

// SampleRate returns the fraction of ordinals in the visible domain
// that are drawn.
func (a *Axis) SampleRate() float64 {
	return resample.SampleRate(a.state.Domain(), a.budget)
}

// SetCollectionSize reports the number of elements on this axis. The
// axis never shrinks.
func (a *Axis) SetCollectionSize(n int) bool {
	return a.extent.OnCollectionSizeKnown(n)
}

// CollectionSize returns the largest size reported so far.
func (a *Axis) CollectionSize() (int, bool) {
	return a.extent.Size()
}

// OnDomainChanged subscribes l to every transform update, for
// redrawing axes and labels.
func (a *Axis) OnDomainChanged(l DomainListener) {
	a.state.OnDomainChanged(l)
}

// OnSamplesChanged subscribes l to new sample sets, for redrawing
// data.
func (a *Axis) OnSamplesChanged(l SamplesListener) {
	a.samples.Subscribe(l)
}

// OnExtentChanged subscribes l to growth of the collection, for
// rescaling zoom controls.
func (a *Axis) OnExtentChanged(l ExtentListener) {
	a.extent.OnExtentChanged(l)
}

// StepZoom moves the zoom knob by dir steps as a discrete change.
func (a *Axis) StepZoom(dir int) {
	a.state.ScaleTo(a.knob.Step(a.state.Transform().Scale, dir), false)
}

// Flush resamples immediately if a resample is pending.
func (a *Axis) Flush() bool {
	return a.sched.Flush()
}

// A Viewport is a horizontal time axis and a vertical rank axis.
type Viewport struct {
	X, Y *Axis
}

// NewViewport builds both axes of cfg.
func NewViewport(cfg Config, opts Options) (*Viewport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	x, err := NewAxis("x", cfg.X, opts)
	if err != nil {
		return nil, err
	}
	y, err := NewAxis("y", cfg.Y, opts)
	if err != nil {
		return nil, err
	}
	return &Viewport{X: x, Y: y}, nil
}

// Axis returns the axis named "x" or "y", or nil.
func (v *Viewport) Axis(name string) *Axis {
	switch name {
	case "x":
		return v.X
	case "y":
		return v.Y
	}
	return nil
}

// Flush resamples both axes if they have pending requests.
func (v *Viewport) Flush() {
	v.X.Flush()
	v.Y.Flush()
}
