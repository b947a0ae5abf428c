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

package buffer

import (
	"sync"
	"sync/atomic"
)

// rng is the internal implementation of the Ring interface.
// The stored window lives in b[r:r+n] modulo len(b).
type rng struct {
	m sync.Mutex
	b []byte
	r int    // read position
	n int    // stored byte count
	d uint64 // dropped bytes, atomic
}

func (o *rng) evict(count int) {
	if count > o.n {
		count = o.n
	}

	o.r = (o.r + count) % len(o.b)
	o.n -= count
	atomic.AddUint64(&o.d, uint64(count))
}

func (o *rng) Write(p []byte) (stored int, dropped int) {
	o.m.Lock()
	defer o.m.Unlock()

	c := len(o.b)

	if len(p) > c {
		// the chunk alone overflows the ring: keep its trailing window
		atomic.AddUint64(&o.d, uint64(len(p)-c))
		dropped += len(p) - c
		p = p[len(p)-c:]
	}

	if free := c - o.n; len(p) > free {
		dropped += len(p) - free
		o.evict(len(p) - free)
	}

	w := (o.r + o.n) % c
	n := copy(o.b[w:], p)
	if n < len(p) {
		copy(o.b, p[n:])
	}

	o.n += len(p)
	return len(p), dropped
}

func (o *rng) ReadChunk(max int) []byte {
	o.m.Lock()
	defer o.m.Unlock()

	if o.n == 0 || max < 1 {
		return nil
	}

	n := o.n
	if n > max {
		n = max
	}
	if contiguous := len(o.b) - o.r; n > contiguous {
		n = contiguous
	}

	res := make([]byte, n)
	copy(res, o.b[o.r:o.r+n])

	o.r = (o.r + n) % len(o.b)
	o.n -= n
	return res
}

func (o *rng) Available() int {
	o.m.Lock()
	defer o.m.Unlock()

	return o.n
}

func (o *rng) Capacity() int {
	return len(o.b)
}

func (o *rng) Dropped() uint64 {
	return atomic.LoadUint64(&o.d)
}

func (o *rng) Reset() {
	o.m.Lock()
	defer o.m.Unlock()

	o.r = 0
	o.n = 0
}
