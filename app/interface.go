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

// Package app assembles the application services.
//
// The UI layer owns exactly one App: it builds the settings store, the
// structured logger, the fault sink, the event bus, the connection
// controller, the macro runner, the transfer engine, the UI dispatcher
// and the capture logger, and wires them together — the logger options
// come from the settings document, every component logs through the one
// logger, worker goroutines report to the one fault sink, and the
// controller's fast path feeds the dispatcher. Consumers reach each
// service through the accessors; no global mutable state exists.
package app

import (
	"context"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	libdlg "github.com/jincoder/serialtool/datalog"
	libdsp "github.com/jincoder/serialtool/dispatcher"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libftr "github.com/jincoder/serialtool/filetransfer"
	liblog "github.com/jincoder/serialtool/logger"
	libmac "github.com/jincoder/serialtool/macro"
	libcfg "github.com/jincoder/serialtool/settings"
)

// App owns the assembled application services.
type App interface {
	// Start loads the settings, routes the logger to the configured
	// destinations, starts the dispatcher, attaches the capture logger
	// and begins watching the settings file, all bounded by ctx.
	Start(ctx context.Context) liberr.Error

	// Close stops the macro runner, closes every connection, drains the
	// dispatcher and closes the capture and the logger. Close is
	// idempotent.
	Close()

	// Bus returns the event bus.
	Bus() libbus.Bus

	// Logger returns the structured logger.
	Logger() liblog.Logger

	// Log returns the logger as the closure components consume.
	Log() liblog.FuncLog

	// Faults returns the sink of last resort for goroutine faults.
	Faults() errhdl.Handler

	// Settings returns the configuration store.
	Settings() libcfg.Store

	// Controller returns the connection controller.
	Controller() libcnn.Controller

	// Macro returns the macro runner.
	Macro() libmac.Runner

	// Transfers returns the file transfer engine.
	Transfers() libftr.Engine

	// Dispatcher returns the UI delivery throttle.
	Dispatcher() libdsp.Dispatcher

	// Capture returns the capture logger, or nil before Start.
	Capture() libdlg.Logger
}

// New assembles the services around the given settings path. A nil
// transport factory binds real serial ports; tests inject loopbacks.
// The sink receives the coalesced fast-path deliveries for the UI.
func New(cfgPath string, fct libcnn.TransportFactory, sink libdsp.Sink) App {
	o := &apl{
		p: cfgPath,
	}

	o.g = liblog.New(context.Background())
	o.fl = func() liblog.Logger {
		return o.g
	}

	o.b = libbus.New()
	o.b.SetLogger(o.fl)

	o.h = errhdl.New(o.fl)
	o.s = libcfg.New(cfgPath, o.fl)
	o.c = libcnn.New(o.b, o.fl, fct, o.h)
	o.m = libmac.New(o.c, o.b, o.fl, o.h)
	o.t = libftr.New(o.c, o.b, o.fl, o.h)
	o.d = libdsp.New(0, sink)

	o.c.SetFastPath(func(port string, ts time.Time, p []byte) {
		o.d.Push(port, ts, p)
	})

	return o
}
