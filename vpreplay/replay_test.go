// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/aclements/go-viewport/resample"
	"github.com/aclements/go-viewport/viewport"
)

func testConfig() viewport.Config {
	cfg := viewport.DefaultConfig()
	cfg.X = viewport.AxisConfig{Pixels: 100, UnitSize: 1, MaxScale: 40}
	return cfg
}

func runScript(t *testing.T, drv driver, script string) (*Replay, string) {
	t.Helper()
	cmds, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	rep := &ReporterDumb{w: &buf}
	r, err := NewReplay(testConfig(), viewport.Options{Rand: rand.New(rand.NewSource(1))}, drv, rep)
	if err != nil {
		t.Fatal(err)
	}
	r.Run(cmds)
	return r, buf.String()
}

func TestReplay(t *testing.T) {
	r, out := runScript(t, newVirtualDriver(), `
size x 1000
size y 50
wait 20ms
transform x 2 0
wait 20ms
print
`)
	for _, want := range []string{
		"16.666666ms x: [0, 1000] 100 samples (10.0%) units +100 =0 gaps",
		"16.666666ms y: [0, 50] 50 samples (100.0%) units +50 =0 gaps 1.0 [1, 1]",
		"36.666666ms x: [0, 500] 100 samples (20.0%) units +50 =50 gaps",
		"x: size 1000 scale 2 translate 0 extent [1, 40] domain [0, 500]",
		"x: 2 requests, 2 resamples, 0 superseded, 100 units",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if r.Events() != 3 {
		t.Errorf("got %d events, want 3", r.Events())
	}
}

func TestReplayCoalesce(t *testing.T) {
	// A drag without waits produces one sample set when the
	// replay finishes.
	r, out := runScript(t, newVirtualDriver(), `
size x 1000
flush
zoom x 4 -c
pan x -10 -c
pan x -10 -c
pan x -10 -c
`)
	if r.Events() != 2 {
		t.Errorf("got %d events, want 2:\n%s", r.Events(), out)
	}
	if !strings.Contains(out, "250ms x: ") {
		t.Errorf("drag not resampled after the continuous delay:\n%s", out)
	}
}

func TestReplayRealtime(t *testing.T) {
	r, out := runScript(t, newLoopDriver(), `
size x 1000
pan x -10 -c
`)
	if r.Events() != 1 {
		t.Errorf("got %d events, want 1:\n%s", r.Events(), out)
	}
	if n := len(r.Viewport().X.Samples()); n != 100 {
		t.Errorf("got %d samples, want 100", n)
	}
}

func TestUnitSet(t *testing.T) {
	u := newUnitSet()
	s := func(idx ...int) []resample.Sample {
		var ss []resample.Sample
		for _, i := range idx {
			ss = append(ss, resample.Sample{Start: float64(i), End: float64(i + 1), Index: i})
		}
		return ss
	}
	if a, r := u.update(s(1, 5, 9)); a != 3 || r != 0 {
		t.Errorf("first update: +%d =%d, want +3 =0", a, r)
	}
	id5 := u.ids[5]
	if a, r := u.update(s(5, 7)); a != 1 || r != 1 {
		t.Errorf("second update: +%d =%d, want +1 =1", a, r)
	}
	if u.ids[5] != id5 {
		t.Error("reused unit changed ID")
	}
	if _, ok := u.ids[1]; ok {
		t.Error("dropped unit kept its ID")
	}
	// A unit that leaves and comes back is a new unit.
	u.update(s(7))
	u.update(s(5))
	if u.ids[5] == id5 {
		t.Error("returning unit kept its old ID")
	}
}

func TestGapSummary(t *testing.T) {
	ss := []resample.Sample{{Index: 0}, {Index: 10}, {Index: 30}}
	if got, want := gapSummary(ss), " gaps 15.0 [10, 20]"; got != want {
		t.Errorf("gapSummary = %q, want %q", got, want)
	}
	if got := gapSummary(ss[:1]); got != "" {
		t.Errorf("gapSummary of one sample = %q, want empty", got)
	}
}
