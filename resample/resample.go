// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resample chooses which elements of a large ordered
// collection to draw in a viewport of limited size.
//
// A Resampler maps a continuous domain of ordinal positions onto at
// most Budget samples. If the domain fits in the budget, every ordinal
// in view gets its own sample. Otherwise the domain is divided into
// Budget equal buckets, and each bucket is represented by a single
// ordinal. Representatives chosen by the previous resample are reused
// whenever they still fall in a bucket, so panning and zooming do not
// make the picture flicker. Buckets without a previous representative
// get a uniformly random one: a fixed stride would alias against
// periodic structure in the data.
package resample

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ErrBudget is returned by New for a non-positive budget.
var ErrBudget = errors.New("resample: budget must be positive")

// A Domain is a continuous interval [Lo, Hi] of ordinal positions.
type Domain struct {
	Lo, Hi float64
}

// Span returns the width of d.
func (d Domain) Span() float64 {
	return d.Hi - d.Lo
}

// Equal reports whether d and o have identical endpoints.
func (d Domain) Equal(o Domain) bool {
	return d.Lo == o.Lo && d.Hi == o.Hi
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g]", d.Lo, d.Hi)
}

// A Sample is one drawable unit. Index is the ordinal chosen to
// represent every position in [Start, End).
type Sample struct {
	Start, End float64
	Index      int
}

func (s Sample) String() string {
	return fmt.Sprintf("%d@[%g,%g)", s.Index, s.Start, s.End)
}

// A Resampler computes sample sets for a fixed budget. It remembers
// the last sample set so successive calls can reuse representatives.
//
// A Resampler is not safe for concurrent use.
type Resampler struct {
	budget int
	rng    *rand.Rand

	samples []Sample
	domain  Domain
	n       int
	valid   bool
	maxN    int
}

// New returns a Resampler that produces at most budget samples per
// domain. If rng is nil, a time-seeded source is used.
func New(budget int, rng *rand.Rand) (*Resampler, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrBudget, budget)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Resampler{budget: budget, rng: rng}, nil
}

// Budget returns the maximum number of samples r produces.
func (r *Resampler) Budget() int {
	return r.budget
}

// Samples returns the current sample set, sorted by Start. The caller
// must not modify it.
func (r *Resampler) Samples() []Sample {
	return r.samples
}

// Len returns the number of samples in the current set.
func (r *Resampler) Len() int {
	return len(r.samples)
}

// Domain returns the domain of the last resample. ok is false if r has
// not resampled yet.
func (r *Resampler) Domain() (d Domain, ok bool) {
	return r.domain, r.valid
}

// Resample recomputes the sample set for domain d of a collection of n
// elements. It returns false without doing any work if d and n are
// identical to those of the last resample.
//
// d.Lo must not exceed d.Hi, and n must never be smaller than a
// previously passed n.
func (r *Resampler) Resample(d Domain, n int) (changed bool) {
	if !(d.Lo <= d.Hi) {
		panic(fmt.Sprintf("resample: reversed domain %v", d))
	}
	if n < r.maxN {
		panic(fmt.Sprintf("resample: collection shrank from %d to %d", r.maxN, n))
	}
	r.maxN = n
	if r.valid && r.domain.Equal(d) && r.n == n {
		return false
	}

	var next []Sample
	switch {
	case n <= 0:
		next = []Sample{}
	case d.Span() <= float64(r.budget):
		next = identity(d, n)
	default:
		next = r.bucketed(d, n)
	}

	r.samples, r.domain, r.n, r.valid = next, d, n, true
	return true
}

// identity returns one sample per ordinal in [floor(d.Lo), d.Hi) ∩ [0, n).
func identity(d Domain, n int) []Sample {
	lo := int(math.Floor(d.Lo))
	if lo < 0 {
		lo = 0
	}
	out := make([]Sample, 0, int(d.Span())+1)
	for i := lo; float64(i) < d.Hi && i < n; i++ {
		out = append(out, Sample{float64(i), float64(i + 1), i})
	}
	return out
}

func (r *Resampler) bucketed(d Domain, n int) []Sample {
	width := d.Span() / float64(r.budget)
	prev := r.samples
	iPrev := 0
	out := make([]Sample, 0, r.budget)
	for k := 0; k < r.budget; k++ {
		start := d.Lo + float64(k)*width
		end := d.Lo + float64(k+1)*width
		if k == r.budget-1 {
			end = d.Hi
		}

		// Ordinals that are both in the bucket and in the
		// collection.
		first := int(math.Ceil(start))
		if first < 0 {
			first = 0
		}
		last := int(math.Ceil(end)) - 1
		if last > n-1 {
			last = n - 1
		}
		if first > last {
			continue
		}

		for iPrev < len(prev) && float64(prev[iPrev].Index) < start {
			iPrev++
		}
		var idx int
		if iPrev < len(prev) && float64(prev[iPrev].Index) < end && prev[iPrev].Index < n {
			// Keep the sample from last time so the view
			// doesn't jump around.
			idx = prev[iPrev].Index
		} else {
			idx = first + r.rng.Intn(last-first+1)
			if idx < first {
				idx++
			} else if idx > last {
				idx--
			}
		}

		s := Sample{start, end, idx}
		check(s, n)
		out = append(out, s)
	}
	return out
}

func check(s Sample, n int) {
	if float64(s.Index) < s.Start || float64(s.Index) >= s.End || s.Index < 0 || s.Index >= n {
		panic(fmt.Sprintf("resample: sample %v out of bounds for collection of %d", s, n))
	}
}

// SampleRate returns the fraction of ordinals in d that are drawn with
// the given budget.
func SampleRate(d Domain, budget int) float64 {
	span := d.Span()
	if span <= float64(budget) {
		return 1
	}
	return float64(budget) / span
}
