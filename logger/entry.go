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
	loglvl "github.com/jincoder/serialtool/logger/level"
	"github.com/sirupsen/logrus"
)

// Entry is one log entry under composition. Methods chain and Log emits;
// a nil Entry swallows every call.
type Entry struct {
	b *logrus.Logger
	v loglvl.Level
	g loglvl.Level // logger minimum level at composition time
	m string
	f Fields
	d interface{}
	e []error
}

// FieldAdd attaches one structured field.
func (e *Entry) FieldAdd(key string, val interface{}) *Entry {
	if e == nil {
		return nil
	}

	e.f.Add(key, val)
	return e
}

// DataSet attaches an arbitrary data payload.
func (e *Entry) DataSet(data interface{}) *Entry {
	if e == nil {
		return nil
	}

	e.d = data
	return e
}

// ErrorAdd attaches errors to the entry. With cleanNil, nil errors are
// skipped instead of recorded.
func (e *Entry) ErrorAdd(cleanNil bool, err ...error) *Entry {
	if e == nil {
		return nil
	}

	for _, er := range err {
		if er == nil && cleanNil {
			continue
		}

		e.e = append(e.e, er)
	}

	return e
}

// Log emits the entry to the backend, honoring the logger level.
func (e *Entry) Log() {
	if e == nil || e.b == nil {
		return
	}

	if e.v == loglvl.NilLevel || e.v > e.g {
		return
	}

	ent := logrus.NewEntry(e.b)

	if len(e.f) > 0 {
		ent = ent.WithFields(logrus.Fields(e.f))
	}

	if e.d != nil {
		ent = ent.WithField("data", e.d)
	}

	if len(e.e) > 0 {
		msg := make([]string, 0, len(e.e))
		for _, er := range e.e {
			if er != nil {
				msg = append(msg, er.Error())
			}
		}

		if len(msg) > 0 {
			ent = ent.WithField("error", msg)
		}
	}

	ent.Log(e.v.Logrus(), e.m)
}
