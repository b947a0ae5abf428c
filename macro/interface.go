/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package macro executes scripted command sequences against live ports.
//
// A script is an ordered list of steps, each tagged with its original row
// index so UI reordering never desynchronizes highlights. The runner
// composes each step's wire bytes, sends them to the current connection or
// broadcasts them, optionally awaits a response matching an expect pattern
// within a timeout, honors per-step delays, repeats and jumps, and
// publishes lifecycle events for every transition.
//
// Per-step repeats resolve fully before the global repeat counter
// decrements. Stop is edge-triggered: once observed, no further bytes are
// sent; pause, resume and stop wake any pending wait immediately.
package macro

import (
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	liblog "github.com/jincoder/serialtool/logger"
	"github.com/google/uuid"
)

// RunState is the lifecycle state of the runner.
type RunState uint8

const (
	StateIdle RunState = iota
	StateRunning
	StatePaused
	StateCompleted
	StateStopped
	StateFailed
)

// String returns the state notation used by events and logs.
func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Step is one scripted command.
type Step struct {
	// Selected marks the step as part of the run; unselected steps are
	// skipped.
	Selected bool `json:"selected" mapstructure:"selected"`
	// Command is the user command text, or hex notation when Hex is set.
	Command string `json:"command" mapstructure:"command"`
	// Hex parses Command as hexadecimal notation.
	Hex bool `json:"hex" mapstructure:"hex"`
	// UsePrefix prepends the configured command prefix.
	UsePrefix bool `json:"use_prefix" mapstructure:"use_prefix"`
	// UseSuffix appends the configured command suffix.
	UseSuffix bool `json:"use_suffix" mapstructure:"use_suffix"`
	// DelayAfter waits after the step (or after the expect match).
	DelayAfter time.Duration `json:"delay_after" mapstructure:"delay_after"`
	// Repeat re-executes the step; -1 repeats without limit.
	Repeat int `json:"repeat" mapstructure:"repeat"`
	// Expect is the response pattern awaited after the send; empty skips
	// the wait. A "/.../" pattern is a regular expression.
	Expect string `json:"expect" mapstructure:"expect"`
	// ExpectTimeout bounds the expect wait.
	ExpectTimeout time.Duration `json:"expect_timeout" mapstructure:"expect_timeout"`
	// JumpTo moves execution to the given step position after a
	// successful expect match; zero (the unset value) or negative means
	// no jump, so the first position is never a jump target.
	JumpTo int `json:"jump_to" mapstructure:"jump_to"`
}

// Row is one script entry: a step tagged with its original row index.
type Row struct {
	// Index is the original ordinal of the step in the script.
	Index int
	// Step is the command the row executes.
	Step Step
}

// Options configures one run.
type Options struct {
	// Broadcast sends every step to all open connections instead of the
	// current one.
	Broadcast bool
	// StopOnError fails the run at the first failing step.
	StopOnError bool
	// Repeat runs the whole script this many times; -1 repeats without
	// limit.
	Repeat int
	// Prefix is the configured command prefix steps may prepend.
	Prefix string
	// Suffix is the configured command suffix steps may append.
	Suffix string
}

// Runner executes one script at a time.
type Runner interface {
	// Run starts executing the script with the given options. Only one
	// run may be active at a time.
	Run(script []Row, opt Options) (uuid.UUID, liberr.Error)

	// Pause suspends execution at the next suspension point.
	Pause()

	// Resume restarts a paused run.
	Resume()

	// Stop halts the run; no further bytes are sent once observed.
	Stop()

	// State returns the current lifecycle state.
	State() RunState

	// Done closes when the active run reaches a terminal state; a nil
	// channel is returned when no run is active.
	Done() <-chan struct{}
}

// New returns a Runner driving the given controller and publishing on the
// given bus. The run goroutine executes under the given fault handler: a
// panicking step is captured there and resolves the run to Failed instead
// of terminating the process.
func New(ctl libcnn.Controller, bus libbus.Bus, log liblog.FuncLog, flt errhdl.Handler) Runner {
	return &run{
		c: ctl,
		b: bus,
		l: log,
		h: flt,
	}
}
