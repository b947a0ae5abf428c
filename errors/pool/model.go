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

package pool

import "sync"

// mod is the internal implementation of the Pool interface.
type mod struct {
	m sync.RWMutex
	e []error
}

func (o *mod) Add(e ...error) {
	o.m.Lock()
	defer o.m.Unlock()

	for _, err := range e {
		if err != nil {
			o.e = append(o.e, err)
		}
	}
}

func (o *mod) Get(i int) error {
	o.m.RLock()
	defer o.m.RUnlock()

	if i < 0 || i >= len(o.e) {
		return nil
	}

	return o.e[i]
}

func (o *mod) Slice() []error {
	o.m.RLock()
	defer o.m.RUnlock()

	return append([]error(nil), o.e...)
}

func (o *mod) Last() error {
	o.m.RLock()
	defer o.m.RUnlock()

	if len(o.e) == 0 {
		return nil
	}

	return o.e[len(o.e)-1]
}

func (o *mod) Len() int {
	o.m.RLock()
	defer o.m.RUnlock()

	return len(o.e)
}

func (o *mod) Clear() {
	o.m.Lock()
	o.e = nil
	o.m.Unlock()
}
