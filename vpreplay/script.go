// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// An Op is a script operation.
type Op int

const (
	OpSize Op = iota
	OpTransform
	OpGesture
	OpZoom
	OpPan
	OpScale
	OpKnob
	OpWait
	OpFlush
	OpPrint
)

var opNames = map[string]Op{
	"size":      OpSize,
	"transform": OpTransform,
	"gesture":   OpGesture,
	"zoom":      OpZoom,
	"pan":       OpPan,
	"scale":     OpScale,
	"knob":      OpKnob,
	"wait":      OpWait,
	"flush":     OpFlush,
	"print":     OpPrint,
}

// opArgs is the number of numeric arguments each axis operation takes.
var opArgs = map[Op]int{
	OpSize:      1,
	OpTransform: 2,
	OpGesture:   2,
	OpZoom:      1,
	OpPan:       1,
	OpScale:     1,
	OpKnob:      1,
}

// A Command is one parsed script line.
type Command struct {
	Line int
	Op   Op

	// Axis is "x" or "y" for axis operations.
	Axis string
	// Args are the numeric arguments of an axis operation.
	Args []float64
	// Continuous is set by a trailing -c flag.
	Continuous bool
	// Wait is the duration of an OpWait.
	Wait time.Duration
}

// A ScriptError is a syntax error in a script.
type ScriptError struct {
	Line int
	Msg  string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseScript parses a gesture script. Each line is a command whose
// words are split like a shell command line. Blank lines and lines
// starting with # are ignored.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		words, err := shellquote.Split(text)
		if err != nil {
			return nil, &ScriptError{line, err.Error()}
		}
		cmd, err := parseCommand(line, words)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func parseCommand(line int, words []string) (Command, error) {
	bad := func(format string, a ...interface{}) (Command, error) {
		return Command{}, &ScriptError{line, fmt.Sprintf(format, a...)}
	}

	op, ok := opNames[words[0]]
	if !ok {
		return bad("unknown command %q", words[0])
	}
	cmd := Command{Line: line, Op: op}
	args := words[1:]

	switch op {
	case OpWait:
		if len(args) != 1 {
			return bad("usage: wait DURATION")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil || d < 0 {
			return bad("bad duration %q", args[0])
		}
		cmd.Wait = d
		return cmd, nil

	case OpFlush, OpPrint:
		if len(args) != 0 {
			return bad("%s takes no arguments", words[0])
		}
		return cmd, nil
	}

	if len(args) > 0 && args[len(args)-1] == "-c" {
		switch op {
		case OpSize, OpKnob:
			return bad("%s cannot be continuous", words[0])
		}
		cmd.Continuous = true
		args = args[:len(args)-1]
	}
	if len(args) != 1+opArgs[op] {
		return bad("%s wants an axis and %d arguments", words[0], opArgs[op])
	}
	cmd.Axis = args[0]
	if cmd.Axis != "x" && cmd.Axis != "y" {
		return bad("unknown axis %q", cmd.Axis)
	}
	for _, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return bad("bad number %q", arg)
		}
		cmd.Args = append(cmd.Args, v)
	}

	switch op {
	case OpSize:
		if cmd.Args[0] < 0 || cmd.Args[0] != float64(int(cmd.Args[0])) {
			return bad("size must be a non-negative integer")
		}
	case OpZoom, OpScale:
		if cmd.Args[0] <= 0 {
			return bad("%s must be positive", words[0])
		}
	case OpGesture:
		if cmd.Args[0] <= 0 {
			return bad("gesture factor must be positive")
		}
	case OpTransform:
		if cmd.Args[0] <= 0 {
			return bad("transform scale must be positive")
		}
	case OpKnob:
		if cmd.Args[0] != 1 && cmd.Args[0] != -1 {
			return bad("knob direction must be +1 or -1")
		}
	}
	return cmd, nil
}
