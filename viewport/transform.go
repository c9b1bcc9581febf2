// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"fmt"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-viewport/resample"
)

// A Transform is a zoom applied to an axis. A pixel p of the
// untransformed axis is displayed at Scale*p + Translate.
type Transform struct {
	Scale, Translate float64
}

// Identity is the transform of a fully zoomed-out axis.
var Identity = Transform{Scale: 1}

// A ScaleExtent bounds Transform.Scale.
type ScaleExtent struct {
	Min, Max float64
}

// placeholderExtent is used until the collection size is known.
var placeholderExtent = ScaleExtent{1, 5}

// Valid reports whether e is a non-empty range of positive scales.
func (e ScaleExtent) Valid() bool {
	return e.Min > 0 && e.Min <= e.Max
}

// Clamp returns k limited to e.
func (e ScaleExtent) Clamp(k float64) float64 {
	if k < e.Min {
		return e.Min
	}
	if k > e.Max {
		return e.Max
	}
	return k
}

func (e ScaleExtent) String() string {
	return fmt.Sprintf("[%g, %g]", e.Min, e.Max)
}

// An ExtentPolicy derives the ScaleExtent from the collection size.
// The lower bound is always 1 (everything visible).
type ExtentPolicy struct {
	// MaxScale is a fixed upper bound on the scale. 0 means no
	// fixed bound.
	MaxScale float64

	// MinSpan is the smallest number of ordinals the most
	// zoomed-in view may show. 0 means no limit.
	MinSpan float64
}

// Extent returns the ScaleExtent for a collection of size elements.
func (p ExtentPolicy) Extent(size int) ScaleExtent {
	max := p.MaxScale
	if p.MinSpan > 0 {
		if s := float64(size) / p.MinSpan; max <= 0 || s < max {
			max = s
		}
	}
	if max < 1 {
		max = 1
	}
	return ScaleExtent{1, max}
}

// TransformState tracks an axis's zoom transform and the visible
// domain it produces.
//
// The axis maps ordinals [0, size] linearly onto pixels [0, pixels].
// Applying a transform zooms and pans that mapping; the visible
// domain is the range of ordinals that lands on [0, pixels].
type TransformState struct {
	pixels float64
	policy ExtentPolicy

	base   scale.Linear
	size   int
	extent ScaleExtent
	t      Transform
	domain resample.Domain

	feed DomainFeed
}

// NewTransformState returns the state of an axis pixels wide. Until
// SetExtent is called the collection is empty and the scale extent is
// a placeholder.
func NewTransformState(pixels float64, policy ExtentPolicy) *TransformState {
	s := &TransformState{
		pixels: pixels,
		policy: policy,
		base:   scale.Linear{Min: 0, Max: 1},
		extent: placeholderExtent,
		t:      Identity,
	}
	s.domain = s.domainOf(s.t)
	return s
}

// OnDomainChanged subscribes l to every transform update.
func (s *TransformState) OnDomainChanged(l DomainListener) {
	s.feed.Subscribe(l)
}

func (s *TransformState) Pixels() float64 { return s.pixels }
func (s *TransformState) Size() int { return s.size }
func (s *TransformState) Extent() ScaleExtent { return s.extent }
func (s *TransformState) Transform() Transform { return s.t }
func (s *TransformState) Domain() resample.Domain { return s.domain }

// SetExtent grows the ordinal domain to [0, max]. It returns false and
// does nothing if max is not larger than the current size. Otherwise
// it recomputes the scale extent, re-applies the current transform
// and notifies listeners.
func (s *TransformState) SetExtent(max int) bool {
	if max <= s.size {
		return false
	}
	s.size = max
	s.base.Max = float64(max)
	s.extent = s.policy.Extent(max)
	s.ApplyTransform(s.t.Scale, s.t.Translate, false)
	return true
}

// ApplyTransform sets the transform, clamping the scale to the extent
// and the translation so the view stays inside the collection, and
// notifies listeners of the resulting domain.
func (s *TransformState) ApplyTransform(k, translate float64, continuous bool) {
	k = s.extent.Clamp(k)
	// The view [0, pixels] must stay inside the transformed
	// axis [translate, k*pixels + translate].
	if min := s.pixels * (1 - k); translate < min {
		translate = min
	}
	if translate > 0 {
		translate = 0
	}
	s.t = Transform{k, translate}
	s.domain = s.domainOf(s.t)
	s.feed.Publish(DomainEvent{s.domain, k, continuous})
}

func (s *TransformState) domainOf(t Transform) resample.Domain {
	invert := func(p float64) float64 {
		return s.base.Unmap((p - t.Translate) / t.Scale / s.pixels)
	}
	return resample.Domain{Lo: invert(0), Hi: invert(s.pixels)}
}

// ZoomAt multiplies the scale by factor, keeping the ordinal under
// pixel fixed.
func (s *TransformState) ZoomAt(factor, pixel float64, continuous bool) {
	k := s.extent.Clamp(s.t.Scale * factor)
	translate := pixel - (pixel-s.t.Translate)*k/s.t.Scale
	s.ApplyTransform(k, translate, continuous)
}

// PanBy moves the view by delta pixels.
func (s *TransformState) PanBy(delta float64, continuous bool) {
	s.ApplyTransform(s.t.Scale, s.t.Translate+delta, continuous)
}

// ScaleTo sets the scale to k, keeping the center of the view fixed.
func (s *TransformState) ScaleTo(k float64, continuous bool) {
	s.ZoomAt(k/s.t.Scale, s.pixels/2, continuous)
}

// Gesture applies a raw gesture: zoom by factor about the center of
// the view, then pan by delta pixels.
func (s *TransformState) Gesture(factor, delta float64, continuous bool) {
	k := s.extent.Clamp(s.t.Scale * factor)
	c := s.pixels / 2
	translate := c - (c-s.t.Translate)*k/s.t.Scale + delta
	s.ApplyTransform(k, translate, continuous)
}

// Ticks returns up to max evenly spaced integral tick positions in the
// visible domain.
func (s *TransformState) Ticks(max int) []float64 {
	l := scale.Linear{Min: s.domain.Lo, Max: s.domain.Hi}
	major, _ := l.Ticks(scale.TickOptions{Max: max, MinLevel: 0, MaxLevel: 1000})
	return major
}
