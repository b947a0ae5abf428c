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

package handler

import (
	"fmt"
	"sync/atomic"

	errpol "github.com/jincoder/serialtool/errors/pool"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
)

// hdl is the internal implementation of the Handler interface.
type hdl struct {
	l liblog.FuncLog
	p errpol.Pool
	t atomic.Value // Toast
}

func (o *hdl) log() liblog.Logger {
	if o.l != nil {
		return o.l()
	}

	return nil
}

func (o *hdl) toast() Toast {
	if i := o.t.Load(); i != nil {
		if t, k := i.(Toast); k {
			return t
		}
	}

	return nil
}

func (o *hdl) Go(component string, fct func()) {
	if fct == nil {
		return
	}

	go func() {
		defer o.Recover(component)
		fct()
	}()
}

func (o *hdl) Recover(component string) {
	if rec := recover(); rec != nil {
		o.Capture(component, recovered(component, rec))
	}
}

func (o *hdl) Capture(component string, err error) {
	if err == nil {
		return
	}

	o.p.Add(err)

	if log := o.log(); log != nil {
		log.Entry(loglvl.ErrorLevel, "fault captured in %s", component).ErrorAdd(true, err).Log()
	}

	if t := o.toast(); t != nil {
		t(component, err.Error())
	}
}

func (o *hdl) SetToast(fct Toast) {
	if fct != nil {
		o.t.Store(fct)
	}
}

func (o *hdl) Errors() []error {
	return o.p.Slice()
}

func (o *hdl) Last() error {
	return o.p.Last()
}

func (o *hdl) Clear() {
	o.p.Clear()
}

func toString(rec interface{}) string {
	switch v := rec.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}
