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

package macro

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	libcmd "github.com/jincoder/serialtool/command"
	libcnn "github.com/jincoder/serialtool/connection"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libexp "github.com/jincoder/serialtool/expect"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
	"github.com/google/uuid"
)

// pollSlice bounds how long a wait may outlive a pause/stop/resume signal.
const pollSlice = 50 * time.Millisecond

// run is the internal implementation of the Runner interface.
type run struct {
	c libcnn.Controller
	b libbus.Bus
	l liblog.FuncLog
	h errhdl.Handler

	mu sync.Mutex
	st atomic.Int32 // RunState

	stp atomic.Bool
	pse atomic.Bool
	fin atomic.Bool // terminal state reached

	wk chan struct{} // wake signal for pending waits
	dn chan struct{} // closes at terminal state
}

func (o *run) log() liblog.Logger {
	if o.l != nil {
		return o.l()
	}

	return nil
}

func (o *run) State() RunState {
	return RunState(o.st.Load())
}

func (o *run) Done() <-chan struct{} {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.dn
}

func (o *run) Run(script []Row, opt Options) (uuid.UUID, liberr.Error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s := o.State(); s == StateRunning || s == StatePaused {
		return uuid.Nil, ErrorAlreadyRunning.Error(nil)
	}

	rows := make([]Row, 0, len(script))
	for _, r := range script {
		if r.Step.Selected {
			rows = append(rows, r)
		}
	}

	if len(rows) == 0 {
		return uuid.Nil, ErrorEmptyScript.Error(nil)
	}

	o.stp.Store(false)
	o.pse.Store(false)
	o.fin.Store(false)
	o.wk = make(chan struct{}, 1)
	o.dn = make(chan struct{})
	o.st.Store(int32(StateRunning))

	id := uuid.New()
	o.b.Publish(TopicStarted, EventStarted{ScriptID: id})

	// the run executes under the fault sink: a panicking step is
	// captured and the run resolves to Failed instead of taking the
	// process down
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				err := liberr.NewErrorRecovered("panic in macro run", fmt.Sprint(rec))

				if o.h != nil {
					o.h.Capture("macro:runner", err)
				}

				o.finish(StateFailed, false)
			}
		}()

		o.exec(rows, opt)
	}()

	return id, nil
}

func (o *run) Pause() {
	if o.State() == StateRunning {
		o.pse.Store(true)
		o.st.Store(int32(StatePaused))
		o.signal()
	}
}

func (o *run) Resume() {
	if o.State() == StatePaused {
		o.pse.Store(false)
		o.st.Store(int32(StateRunning))
		o.signal()
	}
}

func (o *run) Stop() {
	o.stp.Store(true)
	o.signal()
}

func (o *run) signal() {
	o.mu.Lock()
	wk := o.wk
	o.mu.Unlock()

	if wk == nil {
		return
	}

	select {
	case wk <- struct{}{}:
	default:
	}
}

// respond wakes the expect wait when response bytes arrive.
func (o *run) respond() {
	o.signal()
}

// finish resolves the run into a terminal state exactly once; later
// calls (a panic unwinding after a normal finish) are ignored.
func (o *run) finish(st RunState, success bool) {
	if o.fin.Swap(true) {
		return
	}

	o.st.Store(int32(st))
	o.b.Publish(TopicFinished, EventFinished{Success: success})

	o.mu.Lock()
	if o.dn != nil {
		close(o.dn)
	}
	o.mu.Unlock()

	if log := o.log(); log != nil {
		log.Entry(loglvl.InfoLevel, "macro finished state=%s success=%v", st.String(), success).Log()
	}
}

func (o *run) exec(rows []Row, opt Options) {
	var (
		success = true
		globals = opt.Repeat
	)

	if globals == 0 {
		globals = 1
	}

	for iter := 0; globals < 0 || iter < globals; iter++ {
		i := 0

		for i < len(rows) {
			if o.stp.Load() {
				o.finish(StateStopped, false)
				return
			}

			var (
				row    = rows[i]
				reps   = row.Step.Repeat
				target = -1
			)

			if reps == 0 {
				reps = 1
			}

			// per-step repeats resolve fully before advancing; a jump
			// target breaks out of the repeat loop
			for rep := 0; reps < 0 || rep < reps; rep++ {
				if o.stp.Load() {
					o.finish(StateStopped, false)
					return
				}

				ok, jump, stopped := o.step(row, opt)

				if stopped {
					o.finish(StateStopped, false)
					return
				}

				if !ok {
					success = false

					if opt.StopOnError {
						o.finish(StateFailed, false)
						return
					}
				} else if jump >= 0 && jump < len(rows) {
					target = jump
					break
				}
			}

			if target >= 0 {
				i = target
			} else {
				i++
			}
		}
	}

	o.finish(StateCompleted, success)
}

// step executes one row once: compose, send, expect, delay. It returns the
// step outcome, the jump target (negative for none), and whether a stop or
// a target loss interrupted the step.
func (o *run) step(row Row, opt Options) (ok bool, jump int, stopped bool) {
	o.b.Publish(TopicStepStarted, EventStepStarted{RowIndex: row.Index, Step: row.Step})

	wire, err := libcmd.Format(row.Step.Command, row.Step.Hex, row.Step.UsePrefix, row.Step.UseSuffix, opt.Prefix, opt.Suffix)
	if err != nil {
		o.stepDone(row.Index, false, "")
		return false, -1, false
	}

	var (
		target  string
		matcher libexp.Matcher
		subId   libbus.SubscriptionId
	)

	if !opt.Broadcast {
		target = o.c.Current()
		if target == "" || !o.c.IsOpen(target) {
			o.stepDone(row.Index, false, "")
			return false, -1, false
		}
	}

	// subscribe before sending so a fast response cannot slip between
	// send and expect
	if row.Step.Expect != "" {
		matcher = libexp.New(0)
		subId, _ = o.b.Subscribe(libcnn.TopicDataReceived, func(_ string, payload interface{}) {
			if ev, k := payload.(libcnn.EventData); k {
				if opt.Broadcast || ev.Port == target {
					matcher.Append(string(ev.Bytes))
					o.respond()
				}
			}
		})
		defer o.b.Unsubscribe(subId)
	}

	if opt.Broadcast {
		if len(o.c.Broadcast(wire)) == 0 {
			o.stepDone(row.Index, false, "")
			return false, -1, false
		}
	} else if serr := o.c.Send(target, wire); serr != nil {
		o.stepDone(row.Index, false, "")
		return false, -1, false
	}

	if row.Step.Expect != "" {
		matched, lost := o.await(matcher, row.Step.Expect, row.Step.ExpectTimeout, target, opt.Broadcast)

		if o.stp.Load() {
			return false, -1, true
		}

		if lost {
			// the target connection went away mid-step: cancel the step
			// and resolve the run to Stopped
			o.stepDone(row.Index, false, "")
			return false, -1, true
		}

		if !matched {
			if log := o.log(); log != nil {
				log.Entry(loglvl.WarnLevel, "step %d expect '%s' timed out", row.Index, row.Step.Expect).Log()
			}

			o.stepDone(row.Index, false, "")
			return false, -1, false
		}
	}

	if row.Step.DelayAfter > 0 {
		if !o.wait(row.Step.DelayAfter) {
			return false, -1, true
		}
	}

	var response string
	if matcher != nil {
		response = o.responseText(matcher)
	}

	o.stepDone(row.Index, true, response)

	jump = -1
	if row.Step.Expect != "" && row.Step.JumpTo > 0 {
		jump = row.Step.JumpTo
	}

	return true, jump, false
}

func (o *run) stepDone(rowIndex int, success bool, response string) {
	o.b.Publish(TopicStepCompleted, EventStepCompleted{
		RowIndex:     rowIndex,
		Success:      success,
		ResponseText: response,
	})
}

// await blocks until the pattern matches, the timeout expires, a stop is
// observed, or the target connection closes.
func (o *run) await(m libexp.Matcher, pattern string, timeout time.Duration, target string, broadcast bool) (matched bool, lost bool) {
	if timeout < 1 {
		timeout = time.Second
	}

	deadline := time.Now().Add(timeout)

	for {
		if o.stp.Load() {
			return false, false
		}

		if !broadcast && !o.c.IsOpen(target) {
			return false, true
		}

		if !o.pse.Load() && m.Match(pattern) {
			return true, false
		}

		rem := time.Until(deadline)
		if rem <= 0 {
			return false, false
		}

		if rem > pollSlice {
			rem = pollSlice
		}

		o.block(rem)
	}
}

// wait sleeps the given delay, waking early on pause/resume/stop. It
// reports false when a stop was observed.
func (o *run) wait(d time.Duration) bool {
	deadline := time.Now().Add(d)

	for {
		if o.stp.Load() {
			return false
		}

		if !o.pse.Load() {
			rem := time.Until(deadline)
			if rem <= 0 {
				return true
			}

			if rem > pollSlice {
				rem = pollSlice
			}

			o.block(rem)
			continue
		}

		o.block(pollSlice)
	}
}

func (o *run) block(d time.Duration) {
	o.mu.Lock()
	wk := o.wk
	o.mu.Unlock()

	select {
	case <-wk:
	case <-time.After(d):
	}
}

// responseText renders the matcher window for the step_completed event.
func (o *run) responseText(m libexp.Matcher) string {
	return m.String()
}
