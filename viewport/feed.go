// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import "github.com/aclements/go-viewport/resample"

// Each feed below fans an event out to its listeners in subscription
// order. Listeners cannot be removed, and subscribing from inside a
// listener panics: the listener list is fixed while an event is being
// delivered.

// A DomainEvent reports a new visible domain.
type DomainEvent struct {
	Domain resample.Domain
	// Scale is the zoom factor that produced Domain.
	Scale float64
	// Continuous is true for events from an ongoing gesture such
	// as a drag or inertial zoom.
	Continuous bool
}

type DomainListener interface {
	DomainChanged(ev DomainEvent)
}

// DomainListenerFunc adapts a function to a DomainListener.
type DomainListenerFunc func(ev DomainEvent)

func (f DomainListenerFunc) DomainChanged(ev DomainEvent) { f(ev) }

type DomainFeed struct {
	ls    []DomainListener
	depth int
}

func (f *DomainFeed) Subscribe(l DomainListener) {
	if f.depth > 0 {
		panic("viewport: subscribe during domain event delivery")
	}
	f.ls = append(f.ls, l)
}

func (f *DomainFeed) Publish(ev DomainEvent) {
	f.depth++
	defer func() { f.depth-- }()
	for _, l := range f.ls {
		l.DomainChanged(ev)
	}
}

func (f *DomainFeed) Len() int { return len(f.ls) }

// A SamplesListener is told that an axis has a new sample set. It
// reads the samples from the axis.
type SamplesListener interface {
	SamplesChanged()
}

// SamplesListenerFunc adapts a function to a SamplesListener.
type SamplesListenerFunc func()

func (f SamplesListenerFunc) SamplesChanged() { f() }

type SamplesFeed struct {
	ls    []SamplesListener
	depth int
}

func (f *SamplesFeed) Subscribe(l SamplesListener) {
	if f.depth > 0 {
		panic("viewport: subscribe during samples event delivery")
	}
	f.ls = append(f.ls, l)
}

func (f *SamplesFeed) Publish() {
	f.depth++
	defer func() { f.depth-- }()
	for _, l := range f.ls {
		l.SamplesChanged()
	}
}

func (f *SamplesFeed) Len() int { return len(f.ls) }

// An ExtentEvent reports that the collection grew and the zoom range
// changed with it.
type ExtentEvent struct {
	Size   int
	Extent ScaleExtent
}

type ExtentListener interface {
	ExtentChanged(ev ExtentEvent)
}

// ExtentListenerFunc adapts a function to an ExtentListener.
type ExtentListenerFunc func(ev ExtentEvent)

func (f ExtentListenerFunc) ExtentChanged(ev ExtentEvent) { f(ev) }

type ExtentFeed struct {
	ls    []ExtentListener
	depth int
}

func (f *ExtentFeed) Subscribe(l ExtentListener) {
	if f.depth > 0 {
		panic("viewport: subscribe during extent event delivery")
	}
	f.ls = append(f.ls, l)
}

func (f *ExtentFeed) Publish(ev ExtentEvent) {
	f.depth++
	defer func() { f.depth-- }()
	for _, l := range f.ls {
		l.ExtentChanged(ev)
	}
}

func (f *ExtentFeed) Len() int { return len(f.ls) }
