// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

// An ExtentController grows an axis as the size of its collection is
// discovered. Sizes may arrive repeatedly while data streams in; the
// axis only ever grows.
type ExtentController struct {
	state *TransformState
	size  int
	known bool
	feed  ExtentFeed
}

func NewExtentController(state *TransformState) *ExtentController {
	return &ExtentController{state: state}
}

// OnExtentChanged subscribes l to growth of the collection.
func (c *ExtentController) OnExtentChanged(l ExtentListener) {
	c.feed.Subscribe(l)
}

// OnCollectionSizeKnown records that the collection has n elements.
// The first call, and any call with a larger n than before, grows the
// axis and notifies listeners. It returns whether anything changed.
func (c *ExtentController) OnCollectionSizeKnown(n int) bool {
	if n < 0 || c.known && n <= c.size {
		return false
	}
	c.known = true
	c.size = n
	c.state.SetExtent(n)
	c.feed.Publish(ExtentEvent{Size: n, Extent: c.state.Extent()})
	return true
}

// Size returns the largest collection size seen. ok is false if no
// size has been reported yet.
func (c *ExtentController) Size() (n int, ok bool) {
	return c.size, c.known
}
