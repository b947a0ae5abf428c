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

package logger

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	loglvl "github.com/jincoder/serialtool/logger/level"
	"github.com/sirupsen/logrus"
)

// lgr is the internal implementation of the Logger interface.
type lgr struct {
	m sync.RWMutex
	x context.Context

	v loglvl.Level // minimum entry level
	w loglvl.Level // io writer level
	f Fields
	o *Options
	l *logrus.Logger
	c []io.Closer // file destinations to close on rebuild
}

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.m.Lock()
	o.v = lvl
	o.m.Unlock()
}

func (o *lgr) GetLevel() loglvl.Level {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.v
}

func (o *lgr) SetIOWriterLevel(lvl loglvl.Level) {
	o.m.Lock()
	o.w = lvl
	o.m.Unlock()
}

func (o *lgr) GetIOWriterLevel() loglvl.Level {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.w
}

func (o *lgr) SetFields(f Fields) {
	o.m.Lock()
	defer o.m.Unlock()

	if f == nil {
		f = Fields{}
	}

	o.f = f
}

func (o *lgr) GetFields() Fields {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.f.Clone()
}

func (o *lgr) SetOptions(opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}

	b := logrus.New()
	b.SetOutput(io.Discard)
	b.SetLevel(logrus.DebugLevel)

	var closers []io.Closer

	if opt.Stdout == nil || !opt.Stdout.DisableStandard {
		std := opt.Stdout
		if std == nil {
			std = &OptionsStd{}
		}

		b.AddHook(newHookStd(std))
	}

	for _, fo := range opt.LogFile {
		h, err := newHookFile(fo)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}

			return err
		}

		b.AddHook(h)
		closers = append(closers, h)
	}

	o.m.Lock()
	old := o.c
	o.l = b
	o.o = opt
	o.c = closers
	o.m.Unlock()

	for _, c := range old {
		_ = c.Close()
	}

	return nil
}

func (o *lgr) GetOptions() *Options {
	o.m.RLock()
	defer o.m.RUnlock()

	if o.o == nil {
		return &Options{}
	}

	return o.o
}

func (o *lgr) Entry(lvl loglvl.Level, message string, args ...interface{}) *Entry {
	if o == nil {
		return nil
	}

	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	o.m.RLock()
	defer o.m.RUnlock()

	return &Entry{
		b: o.l,
		v: lvl,
		g: o.v,
		m: message,
		f: o.f.Clone(),
	}
}

func (o *lgr) Debug(message string, data interface{}, args ...interface{}) {
	o.Entry(loglvl.DebugLevel, message, args...).DataSet(data).Log()
}

func (o *lgr) Info(message string, data interface{}, args ...interface{}) {
	o.Entry(loglvl.InfoLevel, message, args...).DataSet(data).Log()
}

func (o *lgr) Warning(message string, data interface{}, args ...interface{}) {
	o.Entry(loglvl.WarnLevel, message, args...).DataSet(data).Log()
}

func (o *lgr) Error(message string, data interface{}, args ...interface{}) {
	o.Entry(loglvl.ErrorLevel, message, args...).DataSet(data).Log()
}

// Write logs each written line at the IO writer level, letting the
// logger stand in for a standard library log output.
func (o *lgr) Write(p []byte) (int, error) {
	if msg := strings.TrimSpace(string(p)); msg != "" {
		o.Entry(o.GetIOWriterLevel(), "%s", msg).Log()
	}

	return len(p), nil
}

func (o *lgr) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	var err error

	for _, c := range o.c {
		if e := c.Close(); e != nil {
			err = e
		}
	}

	o.c = nil
	o.l.SetOutput(io.Discard)
	o.l.ReplaceHooks(make(logrus.LevelHooks))

	return err
}
