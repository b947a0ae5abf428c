/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package multi

import (
	"io"
	"sync"
)

// mlt is the internal implementation of the Multi interface.
type mlt struct {
	m sync.RWMutex
	w []io.Writer
}

func (o *mlt) AddWriter(w ...io.Writer) {
	o.m.Lock()
	defer o.m.Unlock()

	for _, i := range w {
		if i != nil {
			o.w = append(o.w, i)
		}
	}
}

func (o *mlt) Clean() {
	o.m.Lock()
	o.w = nil
	o.m.Unlock()
}

func (o *mlt) Writer() io.Writer {
	o.m.RLock()
	defer o.m.RUnlock()

	if len(o.w) == 0 {
		return io.Discard
	}

	return io.MultiWriter(o.w...)
}

func (o *mlt) Write(p []byte) (int, error) {
	return o.Writer().Write(p)
}

func (o *mlt) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}
