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

// Package handler is the sink of last resort for uncaught faults.
//
// Worker goroutines, the macro runner and transfer jobs never let a fault
// escape: they run under Go or defer Recover, so a panic is captured,
// logged and collected instead of terminating the process. Captured faults
// route to one structured log sink plus an optional user-visible toast
// callback; the isolation policy stays with the callers (a worker fault
// closes that connection, a macro fault stops the macro, a transfer fault
// fails that job).
package handler

import (
	liberr "github.com/jincoder/serialtool/errors"
	errpol "github.com/jincoder/serialtool/errors/pool"
	liblog "github.com/jincoder/serialtool/logger"
)

// Toast delivers one captured fault to a user-visible channel.
type Toast func(component string, message string)

// Handler captures faults from parallel components and routes them to a
// single sink.
type Handler interface {
	// Go runs fct on its own goroutine with panic recovery attached,
	// attributing any fault to the given component.
	Go(component string, fct func())

	// Recover captures an in-flight panic; it must be deferred:
	//
	//	defer h.Recover("worker:P1")
	Recover(component string)

	// Capture collects one fault, logs it and raises the toast. Nil
	// errors are ignored.
	Capture(component string, err error)

	// SetToast installs the user-visible fault channel.
	SetToast(fct Toast)

	// Errors returns every captured fault in capture order.
	Errors() []error

	// Last returns the most recent captured fault, or nil.
	Last() error

	// Clear drops the collected faults.
	Clear()
}

// New returns a Handler logging through the given logger function.
func New(log liblog.FuncLog) Handler {
	return &hdl{
		l: log,
		p: errpol.New(),
	}
}

// recovered wraps a recovered panic value into a typed error.
func recovered(component string, rec interface{}) liberr.Error {
	return liberr.NewErrorRecovered("panic in "+component, toString(rec))
}
