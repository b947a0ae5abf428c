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

package delim

import (
	"bufio"
	"io"
	"sync"
)

// dlm is the internal implementation of the BufferDelim interface.
type dlm struct {
	m sync.Mutex
	i io.ReadCloser
	b *bufio.Reader
	r byte   // delimiter
	p []byte // pending block remainder for short Read buffers
}

func (o *dlm) Delim() rune {
	return rune(o.r)
}

func (o *dlm) ReadBytes() ([]byte, error) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.b == nil {
		return nil, ErrInstance
	}

	res, err := o.b.ReadBytes(o.r)
	if len(res) == 0 && err == nil {
		return nil, io.EOF
	}

	return res, err
}

// Read fills p with at most one block per call; a block longer than p
// continues on the next calls before the following block starts.
func (o *dlm) Read(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.b == nil {
		return 0, ErrInstance
	}

	if len(o.p) == 0 {
		blk, err := o.b.ReadBytes(o.r)
		if len(blk) == 0 {
			if err == nil {
				err = io.EOF
			}
			return 0, err
		}

		o.p = blk
	}

	n := copy(p, o.p)
	o.p = o.p[n:]
	return n, nil
}

func (o *dlm) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.b == nil {
		return ErrInstance
	}

	o.b = nil
	o.p = nil
	return o.i.Close()
}
