// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-viewport/resample"
	"golang.org/x/image/draw"
)

var errNoSamples = errors.New("no samples to render")

// signal is the synthetic collection the renderers draw: element i of
// a sine wave with the given period in elements. A fixed-stride
// sampler with a stride near a multiple of period would draw it as a
// flat line.
func signal(i, period int) float64 {
	if period <= 0 {
		return 0
	}
	return math.Sin(2 * math.Pi * float64(i) / float64(period))
}

// sampleTable returns a table of each sample's index and value.
func sampleTable(ss []resample.Sample, period int) *table.Table {
	xs := make([]float64, len(ss))
	ys := make([]float64, len(ss))
	for i, s := range ss {
		xs[i] = float64(s.Index)
		ys[i] = signal(s.Index, period)
	}
	return new(table.Builder).Add("index", xs).Add("value", ys).Done()
}

// WriteSVG plots the signal at each sample as a width x height SVG.
func WriteSVG(w io.Writer, ss []resample.Sample, period int, title string, width, height int) error {
	if len(ss) == 0 {
		return errNoSamples
	}
	plot := gg.NewPlot(sampleTable(ss, period))
	plot.SetScale("y", gg.NewLinearScaler().Include(-1).Include(1))
	plot.Add(gg.LayerLines{X: "index", Y: "value"})
	plot.Add(gg.LayerPoints{X: "index", Y: "value"})
	if title != "" {
		plot.Add(gg.Title(title))
	}
	return plot.WriteSVG(w, width, height)
}

// Strip returns a width x height image of the signal along the
// sampled axis. Each sample is one pixel of a strip that is then
// scaled to the requested size.
func Strip(ss []resample.Sample, period int, width, height int) (*image.RGBA, error) {
	if len(ss) == 0 {
		return nil, errNoSamples
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad strip size %dx%d", width, height)
	}
	src := image.NewGray(image.Rect(0, 0, len(ss), 1))
	for i, s := range ss {
		v := (signal(s.Index, period) + 1) / 2
		src.SetGray(i, 0, color.Gray{uint8(math.Round(v * 255))})
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// WritePNG writes Strip(ss, period, width, height) as a PNG.
func WritePNG(w io.Writer, ss []resample.Sample, period int, width, height int) error {
	img, err := Strip(ss, period, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
