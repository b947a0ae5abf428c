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

package expect

import (
	"regexp"
	"strings"
	"sync"

	libatm "github.com/jincoder/serialtool/atomic"
)

// mtc is the internal implementation of the Matcher interface.
type mtc struct {
	m sync.Mutex
	b []byte
	s int
	c libatm.MapTyped[string, *regexp.Regexp]
}

func (o *mtc) Append(text string) {
	if text == "" {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	if len(text) >= o.s {
		o.b = append(o.b[:0], text[len(text)-o.s:]...)
		return
	}

	if over := len(o.b) + len(text) - o.s; over > 0 {
		o.b = o.b[:copy(o.b, o.b[over:])]
	}

	o.b = append(o.b, text...)
}

func (o *mtc) Match(pattern string) bool {
	if pattern == "" {
		return false
	}

	o.m.Lock()
	buf := string(o.b)
	o.m.Unlock()

	if len(pattern) > 1 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		if r := o.compile(pattern[1 : len(pattern)-1]); r != nil {
			return r.MatchString(buf)
		}

		return false
	}

	return strings.Contains(buf, pattern)
}

func (o *mtc) compile(expr string) *regexp.Regexp {
	if r, ok := o.c.Load(expr); ok {
		return r
	}

	r, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}

	o.c.Store(expr, r)
	return r
}

func (o *mtc) String() string {
	o.m.Lock()
	defer o.m.Unlock()

	return string(o.b)
}

func (o *mtc) Len() int {
	o.m.Lock()
	defer o.m.Unlock()

	return len(o.b)
}

func (o *mtc) Reset() {
	o.m.Lock()
	defer o.m.Unlock()

	o.b = o.b[:0]
}
