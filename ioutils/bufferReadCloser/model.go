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

package bufferReadCloser

import (
	"bytes"
	"io"
	"sync"
)

// buf is the internal implementation of the Buffer interface.
type buf struct {
	m sync.Mutex
	b *bytes.Buffer
	f FuncClose
}

func (o *buf) Read(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()

	return o.b.Read(p)
}

func (o *buf) Write(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()

	return o.b.Write(p)
}

func (o *buf) WriteTo(w io.Writer) (int64, error) {
	o.m.Lock()
	defer o.m.Unlock()

	return o.b.WriteTo(w)
}

func (o *buf) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	o.b.Reset()

	if o.f != nil {
		return o.f()
	}

	return nil
}
