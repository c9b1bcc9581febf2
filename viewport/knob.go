// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"
)

// A ZoomKnob maps zoom scales onto a slider. The slider's groove is
// logarithmic in the scale, so each step of the knob zooms by the same
// factor.
type ZoomKnob struct {
	// Groove and Knob are the widths of the groove and the knob
	// in pixels. The knob travels over [0, Groove-Knob].
	Groove, Knob float64

	// StepSize is how far Step moves the knob, in pixels.
	StepSize float64

	extent ScaleExtent
	groove scale.Log
	flat   bool
}

// NewZoomKnob returns a knob with the default geometry for extent e.
func NewZoomKnob(e ScaleExtent) (*ZoomKnob, error) {
	z := &ZoomKnob{Groove: 100, Knob: 4, StepSize: 5}
	if err := z.SetExtent(e); err != nil {
		return nil, err
	}
	return z, nil
}

// SetExtent rescales the groove to e.
func (z *ZoomKnob) SetExtent(e ScaleExtent) error {
	if !e.Valid() {
		return fmt.Errorf("%w: scale extent %v", ErrInvalidConfig, e)
	}
	z.extent = e
	z.flat = e.Min == e.Max
	if z.flat {
		return nil
	}
	l, err := scale.NewLog(e.Min, e.Max, 10)
	if err != nil {
		return err
	}
	z.groove = l
	return nil
}

func (z *ZoomKnob) Extent() ScaleExtent {
	return z.extent
}

func (z *ZoomKnob) travel() float64 {
	return math.Max(0, z.Groove-z.Knob)
}

// Position returns the knob position for scale k.
func (z *ZoomKnob) Position(k float64) float64 {
	if z.flat {
		return 0
	}
	return z.clamp(z.travel() * z.groove.Map(z.extent.Clamp(k)))
}

// ScaleAt returns the scale for knob position pos.
func (z *ZoomKnob) ScaleAt(pos float64) float64 {
	if z.flat || z.travel() == 0 {
		return z.extent.Min
	}
	return z.extent.Clamp(z.groove.Unmap(z.clamp(pos) / z.travel()))
}

// Step returns the scale after moving the knob from scale k by dir
// steps; negative steps zoom out.
func (z *ZoomKnob) Step(k float64, dir int) float64 {
	return z.ScaleAt(z.Position(k) + float64(dir)*z.StepSize)
}

func (z *ZoomKnob) clamp(pos float64) float64 {
	return math.Max(0, math.Min(z.travel(), pos))
}

// Title describes a sample rate to the user.
func Title(rate float64) string {
	if rate >= 1 {
		return "Displaying every element in this interval."
	}
	return fmt.Sprintf("Due to limited pixels, only %d%% of elements in this interval are shown.", int(math.Round(rate*100)))
}
