// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"golang.org/x/crypto/ssh/terminal"
)

// A Reporter prints replay events. Writes are event lines. Status
// replaces the current status line, which on a terminal stays at the
// bottom of the output.
type Reporter interface {
	io.Writer
	Status(format string, a ...interface{})
	Close()
}

// NewStdoutReporter returns a VT100 reporter if stdout is a capable
// terminal and a plain one otherwise.
func NewStdoutReporter() Reporter {
	if os.Getenv("TERM") == "" || os.Getenv("TERM") == "dumb" || !terminal.IsTerminal(syscall.Stdout) {
		return &ReporterDumb{w: os.Stdout}
	}
	return &ReporterVT100{w: os.Stdout}
}

// ReporterDumb prints status lines like any other line. It may be used
// from multiple goroutines.
type ReporterDumb struct {
	w  io.Writer
	mu sync.Mutex
}

func (r *ReporterDumb) Close() {}

// Status prints the status and its newline in a single write.
func (r *ReporterDumb) Status(format string, a ...interface{}) {
	line := fmt.Sprintf(format, a...) + "\n"
	r.mu.Lock()
	defer r.mu.Unlock()
	io.WriteString(r.w, line)
}

func (r *ReporterDumb) Write(data []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Write(data)
}

// ReporterVT100 keeps a single status line at the bottom of a
// terminal. It may be used from multiple goroutines.
type ReporterVT100 struct {
	w      io.Writer
	mu     sync.Mutex
	status string
}

// VT100 control sequences
const (
	resetLine = "\r\x1b[2K"
	wrapOff   = "\x1b[?7l"
	wrapOn    = "\x1b[?7h"
)

func (r *ReporterVT100) Status(format string, a ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = fmt.Sprintf(format, a...)
	r.redraw()
}

// redraw prints the status line without wrapping so the next redraw
// can erase it. r.mu must be held.
func (r *ReporterVT100) redraw() {
	fmt.Fprintf(r.w, "%s%s%s%s", resetLine, wrapOff, r.status, wrapOn)
}

func (r *ReporterVT100) Write(data []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.w, resetLine)
	n, err := r.w.Write(data)
	if err == nil && r.status != "" {
		r.redraw()
	}
	return n, err
}

// Close leaves the last status line in the output.
func (r *ReporterVT100) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != "" {
		fmt.Fprint(r.w, "\n")
	}
}
