// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package explore enumerates the orders in which things can happen to
// single-threaded, event-driven code.
//
// A test passes Run a function that drives the code under test and
// calls Path.Choose wherever more than one thing could happen next: a
// gesture or a timer, which of two timers, how far a clock advances.
// Run re-runs the function until it has taken every combination of
// outcomes. Queue models the timers of a real-time event loop, whose
// callbacks can already be queued when they are stopped.
package explore

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds the number of branch points on one path when
// Run is given no limit.
const DefaultMaxDepth = 100

// ErrTooDeep is returned by Run when a path makes more choices than the
// depth limit allows.
var ErrTooDeep = errors.New("explore: path exceeds maximum depth")

// A choice is outcome i of a branch point with n outcomes.
type choice struct {
	n, i int
}

// A Path is one run of an explored function.
type Path struct {
	forced []choice // outcomes replayed from an earlier path
	taken  []choice // outcomes of this run so far
	todo   *[][]choice
	max    int
}

// Choose returns an outcome in [0, n). The first run of a new branch
// point takes 0 and queues every other outcome to be taken by a later
// run.
func (p *Path) Choose(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("explore: Choose(%d)", n))
	}
	k := len(p.taken)
	if k < len(p.forced) {
		c := p.forced[k]
		if c.n != n {
			panic(&NondeterminismError{Step: k, Was: c.n, Now: n})
		}
		p.taken = append(p.taken, c)
		return c.i
	}
	if k >= p.max {
		panic(ErrTooDeep)
	}
	// Push in reverse so outcome 1 is popped next and paths run in
	// lexical order.
	for i := n - 1; i > 0; i-- {
		alt := make([]choice, k, k+1)
		copy(alt, p.taken)
		*p.todo = append(*p.todo, append(alt, choice{n, i}))
	}
	p.taken = append(p.taken, choice{n, 0})
	return 0
}

// Bool is a two-way Choose.
func (p *Path) Bool() bool {
	return p.Choose(2) == 1
}

// String describes the outcomes taken so far, as "outcome/fan-out"
// pairs.
func (p *Path) String() string {
	parts := make([]string, len(p.taken))
	for i, c := range p.taken {
		parts[i] = fmt.Sprintf("%d/%d", c.i, c.n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Run calls f once per combination of outcomes of its Choose calls and
// returns the number of runs. A path may make at most maxDepth choices
// (DefaultMaxDepth if maxDepth <= 0).
//
// If f panics, Run stops and returns the panic as an error that names
// the failing path.
func Run(maxDepth int, f func(p *Path)) (paths int, err error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	todo := [][]choice{nil}
	for len(todo) > 0 {
		forced := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		p := &Path{forced: forced, todo: &todo, max: maxDepth}
		if err := p.run(f); err != nil {
			return paths, fmt.Errorf("path %d %v: %w", paths, p, err)
		}
		paths++
	}
	return paths, nil
}

func (p *Path) run(f func(p *Path)) (err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case error:
			err = r
		default:
			err = fmt.Errorf("%v", r)
		}
	}()
	f(p)
	return nil
}

// A NondeterminismError reports that a replayed path reached a branch
// point with a different fan-out than the run that discovered it.
type NondeterminismError struct {
	Step     int
	Was, Now int
}

func (e *NondeterminismError) Error() string {
	return fmt.Sprintf("explore: nondeterministic choice %d: fan-out %d, previously %d", e.Step, e.Now, e.Was)
}
