// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"reflect"
	"testing"
)

func TestExtentController(t *testing.T) {
	s := NewTransformState(550, ExtentPolicy{MaxScale: 112})
	c := NewExtentController(s)
	var evs []ExtentEvent
	c.OnExtentChanged(ExtentListenerFunc(func(ev ExtentEvent) { evs = append(evs, ev) }))

	if _, ok := c.Size(); ok {
		t.Error("size known before any report")
	}
	if c.OnCollectionSizeKnown(-1) {
		t.Error("negative size accepted")
	}
	if !c.OnCollectionSizeKnown(5) {
		t.Error("first size rejected")
	}
	if c.OnCollectionSizeKnown(3) {
		t.Error("shrinking size accepted")
	}
	if c.OnCollectionSizeKnown(5) {
		t.Error("repeated size accepted")
	}
	if n, ok := c.Size(); !ok || n != 5 {
		t.Errorf("Size() = %d, %v; want 5, true", n, ok)
	}
	if s.Size() != 5 {
		t.Errorf("axis size %d, want 5", s.Size())
	}
	if !c.OnCollectionSizeKnown(1000) {
		t.Error("growth rejected")
	}
	want := []ExtentEvent{
		{Size: 5, Extent: ScaleExtent{1, 112}},
		{Size: 1000, Extent: ScaleExtent{1, 112}},
	}
	if !reflect.DeepEqual(evs, want) {
		t.Errorf("want events %v, got %v", want, evs)
	}
}

func TestExtentControllerEmpty(t *testing.T) {
	// An empty collection is known, even though the axis has
	// nothing to grow to.
	s := NewTransformState(600, ExtentPolicy{MaxScale: 40})
	c := NewExtentController(s)
	n := 0
	c.OnExtentChanged(ExtentListenerFunc(func(ExtentEvent) { n++ }))
	if !c.OnCollectionSizeKnown(0) {
		t.Error("empty collection rejected")
	}
	if c.OnCollectionSizeKnown(0) {
		t.Error("repeated empty collection accepted")
	}
	if n != 1 {
		t.Errorf("got %d events, want 1", n)
	}
	if s.Extent() != placeholderExtent {
		t.Errorf("extent %v, want placeholder %v", s.Extent(), placeholderExtent)
	}
}
