// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"bytes"
	"errors"
	"log"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/aclements/go-viewport/resample"
)

type axisTest struct {
	clock   ManualClock
	axis    *Axis
	log     bytes.Buffer
	samples int
}

func newAxisTest(t *testing.T, cfg AxisConfig) *axisTest {
	t.Helper()
	at := new(axisTest)
	a, err := NewAxis("x", cfg, Options{
		Clock:   &at.clock,
		Rand:    rand.New(rand.NewSource(1)),
		Logger:  log.New(&at.log, "", 0),
		Verbose: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	a.OnSamplesChanged(SamplesListenerFunc(func() { at.samples++ }))
	at.axis = a
	return at
}

var testAxis = AxisConfig{Pixels: 100, UnitSize: 1, MaxScale: 40}

func TestAxisResample(t *testing.T) {
	at := newAxisTest(t, testAxis)
	a := at.axis
	if a.Budget() != 100 {
		t.Fatalf("budget %d, want 100", a.Budget())
	}
	if !a.SetCollectionSize(1000) {
		t.Fatal("SetCollectionSize returned false")
	}
	if at.samples != 0 {
		t.Fatal("resampled before the coalescing window closed")
	}
	at.clock.Advance(time.Second / 60)
	if at.samples != 1 {
		t.Fatalf("got %d samples events, want 1", at.samples)
	}

	ss := a.Samples()
	if len(ss) != 100 {
		t.Fatalf("got %d samples, want 100", len(ss))
	}
	for i, s := range ss {
		if s.Start != float64(10*i) || s.End != float64(10*i+10) {
			t.Errorf("sample %d covers [%g, %g), want [%d, %d)", i, s.Start, s.End, 10*i, 10*i+10)
		}
	}
	if d, ok := a.SampledDomain(); !ok || !domainNear(d, resample.Domain{Lo: 0, Hi: 1000}) {
		t.Errorf("sampled domain %v", d)
	}
	if r := a.SampleRate(); r != 0.1 {
		t.Errorf("sample rate %g, want 0.1", r)
	}
	if a.Knob().Extent() != (ScaleExtent{1, 40}) {
		t.Errorf("knob extent %v, want [1, 40]", a.Knob().Extent())
	}
	if !strings.Contains(at.log.String(), "collection size 1000") {
		t.Errorf("extent change not logged:\n%s", at.log.String())
	}
}

func TestAxisUnchanged(t *testing.T) {
	at := newAxisTest(t, testAxis)
	a := at.axis
	a.SetCollectionSize(1000)
	a.Flush()
	if at.samples != 1 {
		t.Fatalf("got %d samples events, want 1", at.samples)
	}

	// Re-applying the same transform resamples, but the sample
	// set doesn't change, so no event is published.
	tr := a.State().Transform()
	a.State().ApplyTransform(tr.Scale, tr.Translate, false)
	at.clock.Advance(time.Second)
	if at.samples != 1 {
		t.Errorf("got %d samples events after no-op transform, want 1", at.samples)
	}
	if st := a.Scheduler().Stats(); st.Fires != 2 {
		t.Errorf("scheduler fired %d times, want 2", st.Fires)
	}
	if !strings.Contains(at.log.String(), "unchanged") {
		t.Errorf("skipped resample not logged:\n%s", at.log.String())
	}
}

func TestAxisCoalesce(t *testing.T) {
	at := newAxisTest(t, testAxis)
	a := at.axis
	a.SetCollectionSize(1000)
	a.Flush()

	a.State().ZoomAt(2, 0, true)
	at.clock.Advance(100 * time.Millisecond)
	a.State().PanBy(-20, true)
	at.clock.Advance(100 * time.Millisecond)
	a.State().PanBy(-20, true)
	if at.samples != 1 {
		t.Fatal("resampled during a gesture")
	}
	at.clock.Advance(50 * time.Millisecond)
	if at.samples != 2 {
		t.Fatalf("got %d samples events, want 2", at.samples)
	}
	want := resample.Domain{Lo: 200, Hi: 700}
	if d, _ := a.SampledDomain(); !domainNear(d, want) {
		t.Errorf("sampled domain %v, want %v", d, want)
	}
	for _, s := range a.Samples() {
		if s.End-s.Start != 5 {
			t.Errorf("sample %v has width %g, want 5", s, s.End-s.Start)
			break
		}
	}
}

func TestAxisGrowBeforeKnown(t *testing.T) {
	// Gestures before the size is known resample an empty
	// collection.
	at := newAxisTest(t, testAxis)
	a := at.axis
	a.State().ZoomAt(2, 50, false)
	a.Flush()
	if len(a.Samples()) != 0 {
		t.Errorf("got samples %v from an empty collection", a.Samples())
	}
	if a.State().Extent() != placeholderExtent {
		t.Errorf("extent %v, want placeholder", a.State().Extent())
	}
	a.SetCollectionSize(1000)
	a.Flush()
	if len(a.Samples()) != 100 {
		t.Errorf("got %d samples after growth, want 100", len(a.Samples()))
	}
	if a.SetCollectionSize(10) {
		t.Error("shrink accepted")
	}
	if n, _ := a.CollectionSize(); n != 1000 {
		t.Errorf("collection size %d, want 1000", n)
	}
}

func TestAxisStepZoom(t *testing.T) {
	at := newAxisTest(t, testAxis)
	a := at.axis
	a.SetCollectionSize(1000)
	a.StepZoom(1)
	want := a.Knob().Step(1, 1)
	if k := a.State().Transform().Scale; k != want {
		t.Errorf("scale %g after step, want %g", k, want)
	}
	for i := 0; i < 100; i++ {
		a.StepZoom(1)
	}
	if k := a.State().Transform().Scale; math.Abs(k-40) > 1e-9 {
		t.Errorf("scale %g after many steps, want 40", k)
	}
	// 25 ordinals are visible, which fits the budget, so every
	// partially visible ordinal is drawn.
	a.Flush()
	if n := len(a.Samples()); n < 25 || n > 26 {
		t.Errorf("got %d samples at full zoom, want 25 or 26", n)
	}
	for _, s := range a.Samples() {
		if s.End-s.Start != 1 || float64(s.Index) != s.Start {
			t.Errorf("sample %v is not a single ordinal", s)
		}
	}
}

func TestViewport(t *testing.T) {
	var clock ManualClock
	v, err := NewViewport(DefaultConfig(), Options{Clock: &clock})
	if err != nil {
		t.Fatal(err)
	}
	if v.Axis("x") != v.X || v.Axis("y") != v.Y || v.Axis("z") != nil {
		t.Error("Axis lookup failed")
	}
	if v.X.ID() == v.Y.ID() {
		t.Error("axes share an ID")
	}
	v.X.SetCollectionSize(1 << 20)
	v.Y.SetCollectionSize(50)
	v.Flush()
	if n := len(v.X.Samples()); n != 600 {
		t.Errorf("x axis has %d samples, want 600", n)
	}
	if n := len(v.Y.Samples()); n != 50 {
		t.Errorf("y axis has %d samples, want 50", n)
	}
	if clock.Pending() != 0 {
		t.Errorf("%d timers pending after Flush", clock.Pending())
	}

	bad := DefaultConfig()
	bad.Y.UnitSize = 0
	if _, err := NewViewport(bad, Options{Clock: &clock}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad config: got %v, want ErrInvalidConfig", err)
	}
	if _, err := NewViewport(DefaultConfig(), Options{}); err == nil {
		t.Error("missing clock accepted")
	}
}
