// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-viewport/resample"
)

func testSamples(n, stride int) []resample.Sample {
	ss := make([]resample.Sample, n)
	for i := range ss {
		ss[i] = resample.Sample{Start: float64(i * stride), End: float64((i + 1) * stride), Index: i * stride}
	}
	return ss
}

func TestSignal(t *testing.T) {
	if v := signal(25, 100); math.Abs(v-1) > 1e-12 {
		t.Errorf("signal(25, 100) = %g, want 1", v)
	}
	// A stride equal to the period aliases to a constant.
	for _, s := range testSamples(10, 97) {
		if v := signal(s.Index, 97); math.Abs(v) > 1e-9 {
			t.Errorf("signal(%d, 97) = %g, want 0", s.Index, v)
		}
	}
	if v := signal(3, 0); v != 0 {
		t.Errorf("signal with no period = %g, want 0", v)
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, testSamples(50, 3), 17, "test plot", 600, 300); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("output is not SVG:\n%.200s", buf.String())
	}
	if err := WriteSVG(&buf, nil, 17, "", 600, 300); err != errNoSamples {
		t.Errorf("empty samples: got %v, want %v", err, errNoSamples)
	}
}

func TestStrip(t *testing.T) {
	img, err := Strip(testSamples(4, 1), 0, 40, 8)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 8 {
		t.Fatalf("strip is %dx%d, want 40x8", b.Dx(), b.Dy())
	}
	// With no period the signal is 0 everywhere, which is mid
	// gray.
	for x := 0; x < 40; x++ {
		c := img.RGBAAt(x, 4)
		if c.A != 255 || c.R < 127 || c.R > 129 || c.R != c.G || c.G != c.B {
			t.Errorf("pixel %d = %v, want opaque mid gray", x, c)
			break
		}
	}
	if _, err := Strip(nil, 0, 40, 8); err != errNoSamples {
		t.Errorf("empty samples: got %v, want %v", err, errNoSamples)
	}
	if _, err := Strip(testSamples(4, 1), 0, 0, 8); err == nil {
		t.Error("zero width accepted")
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testSamples(20, 5), 17, 100, 10); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 10 {
		t.Errorf("PNG is %dx%d, want 100x10", b.Dx(), b.Dy())
	}
}
