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

package errors

import (
	"runtime"
	"strings"
)

// ers is the internal implementation of the Error interface.
type ers struct {
	c uint16
	e string
	p []Error
	t runtime.Frame
}

func (e *ers) Error() string {
	var b strings.Builder

	b.WriteString(e.e)

	for _, p := range e.p {
		b.WriteString(", ")
		b.WriteString(p.Error())
	}

	return b.String()
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}

	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) CodeSlice() []uint16 {
	res := []uint16{e.c}

	for _, p := range e.p {
		res = append(res, p.CodeSlice()...)
	}

	return res
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p == nil || p.Error() == "" {
			continue
		}

		if er := Make(p); er != nil {
			e.p = append(e.p, er)
		}
	}
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withMainError bool) []error {
	var res []error

	if withMainError {
		res = append(res, e)
	}

	for _, p := range e.p {
		res = append(res, p)
	}

	return res
}

func (e *ers) Map(fct FuncMap) bool {
	if fct == nil {
		return false
	}

	if !fct(e) {
		return false
	}

	for _, p := range e.p {
		if !p.Map(fct) {
			return false
		}
	}

	return true
}

func (e *ers) ContainsString(s string) bool {
	res := false

	e.Map(func(er error) bool {
		if strings.Contains(er.Error(), s) {
			res = true
		}

		return !res
	})

	return res
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}

	res := false

	e.Map(func(er error) bool {
		if er.Error() == err.Error() {
			res = true
		}

		return !res
	})

	return res
}

func (e *ers) Unwrap() []error {
	return e.GetParent(false)
}
