/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package logger is the structured logging service of the application.
//
// A Logger wraps a logrus backend whose destinations are configured
// through Options: an ANSI-aware standard output pair and any number of
// append-mode log files. Until SetOptions runs, entries are discarded,
// so components can hold a logger from startup and the application
// decides where it writes. Components receive the logger as a FuncLog
// closure and emit either leveled messages or composed entries.
package logger

import (
	"context"
	"io"
	"sync"

	loglvl "github.com/jincoder/serialtool/logger/level"
	"github.com/sirupsen/logrus"
)

// FuncLog hands components a lazily-resolved Logger.
type FuncLog func() Logger

// Fields carries the structured key/value pairs attached to entries.
type Fields map[string]interface{}

// Clone returns an independent copy of the fields.
func (f Fields) Clone() Fields {
	res := make(Fields, len(f))

	for k, v := range f {
		res[k] = v
	}

	return res
}

// Add sets one key and returns the fields for chaining.
func (f Fields) Add(key string, val interface{}) Fields {
	f[key] = val
	return f
}

// Logger is the structured logging service.
//
// The io.Writer side logs each written line at the IO writer level, so
// the logger can stand in for a standard library log output.
type Logger interface {
	io.WriteCloser

	// SetLevel changes the minimum level of logged entries.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the minimum level of logged entries.
	GetLevel() loglvl.Level

	// SetIOWriterLevel changes the level of lines logged through Write.
	SetIOWriterLevel(lvl loglvl.Level)

	// GetIOWriterLevel returns the level of lines logged through Write.
	GetIOWriterLevel() loglvl.Level

	// SetFields replaces the default fields attached to every entry.
	SetFields(f Fields)

	// GetFields returns the default fields attached to every entry.
	GetFields() Fields

	// SetOptions rebuilds the logging destinations. Previous file
	// destinations are closed first.
	SetOptions(opt *Options) error

	// GetOptions returns the active options.
	GetOptions() *Options

	// Debug logs a formatted message with optional data at debug level.
	Debug(message string, data interface{}, args ...interface{})

	// Info logs a formatted message with optional data at info level.
	Info(message string, data interface{}, args ...interface{})

	// Warning logs a formatted message with optional data at warning level.
	Warning(message string, data interface{}, args ...interface{})

	// Error logs a formatted message with optional data at error level.
	Error(message string, data interface{}, args ...interface{})

	// Entry composes one entry for further enrichment before Log.
	Entry(lvl loglvl.Level, message string, args ...interface{}) *Entry
}

// New returns a Logger bound to the given context. Entries are
// discarded until SetOptions installs destinations.
func New(ctx context.Context) Logger {
	if ctx == nil {
		ctx = context.Background()
	}

	// the backend stays permissive: the minimum level is enforced when
	// entries are composed, not by logrus
	b := logrus.New()
	b.SetOutput(io.Discard)
	b.SetLevel(logrus.DebugLevel)

	return &lgr{
		m: sync.RWMutex{},
		x: ctx,
		v: loglvl.InfoLevel,
		w: loglvl.InfoLevel,
		f: Fields{},
		l: b,
	}
}
