// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vpreplay replays a script of zoom and pan gestures against a
// sampled viewport and reports every sample set it produces.
//
// The script is read from the named file, or standard input. Each line
// is one command:
//
//	size AXIS N                     the axis collection has N elements
//	transform AXIS K T [-c]         set scale K and translation T
//	gesture AXIS FACTOR DELTA [-c]  zoom about the center, then pan
//	zoom AXIS FACTOR [-c]           zoom about the center
//	pan AXIS DELTA [-c]             pan by DELTA pixels
//	scale AXIS K [-c]               set the scale, keeping the center
//	knob AXIS +1|-1                 step the zoom knob
//	wait DURATION                   let time pass, e.g. "wait 300ms"
//	flush                           resample now
//	print                           print the state of both axes
//
// AXIS is x or y. -c marks a change as part of a continuous gesture,
// which coalesces over a longer window. Lines starting with # are
// comments.
//
// By default the replay runs in virtual time, so wait commands return
// immediately and the output is reproducible for a given -seed. With
// -realtime, waits sleep and resamples are driven by real timers.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/aclements/go-viewport/viewport"
)

func main() {
	log.SetPrefix("vpreplay: ")
	log.SetFlags(0)

	var (
		flagConfig   = flag.String("config", "", "read viewport configuration from YAML `file`")
		flagSeed     = flag.Int64("seed", 1, "random `seed` for bucket representatives (0 for time)")
		flagRealtime = flag.Bool("realtime", false, "replay in real time")
		flagSVG      = flag.String("svg", "", "plot the final x samples to SVG `file`")
		flagPNG      = flag.String("png", "", "render the final x samples as a PNG strip to `file`")
		flagPeriod   = flag.Int("period", 97, "period of the synthetic signal, in `elements`")
		flagVerbose  = flag.Bool("v", false, "log every resample")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [script]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := viewport.DefaultConfig()
	if *flagConfig != "" {
		var err error
		cfg, err = viewport.LoadConfig(*flagConfig)
		if err != nil {
			log.Fatal(err)
		}
	}

	var in io.Reader = os.Stdin
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	cmds, err := ParseScript(in)
	if err != nil {
		log.Fatalf("%s: %v", scriptName(), err)
	}

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var drv driver
	if *flagRealtime {
		drv = newLoopDriver()
	} else {
		drv = newVirtualDriver()
	}

	rep := NewStdoutReporter()
	replay, err := NewReplay(cfg, viewport.Options{
		Rand:    rand.New(rand.NewSource(seed)),
		Logger:  log.New(rep, "", 0),
		Verbose: *flagVerbose,
	}, drv, rep)
	if err != nil {
		log.Fatal(err)
	}
	replay.Run(cmds)
	rep.Close()

	// The replay is finished, so the viewport is no longer
	// shared with a loop.
	x := replay.Viewport().X
	if *flagSVG != "" {
		title := fmt.Sprintf("%v %s", x.State().Domain(), viewport.Title(x.SampleRate()))
		writeFile(*flagSVG, func(w io.Writer) error {
			return WriteSVG(w, x.Samples(), *flagPeriod, title, 600, 300)
		})
	}
	if *flagPNG != "" {
		writeFile(*flagPNG, func(w io.Writer) error {
			return WritePNG(w, x.Samples(), *flagPeriod, int(x.State().Pixels()), 32)
		})
	}
}

func scriptName() string {
	if flag.NArg() == 1 {
		return flag.Arg(0)
	}
	return "<stdin>"
}

func writeFile(path string, write func(w io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatalf("%s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}
