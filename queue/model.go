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

package queue

import "sync"

// fifo is the internal implementation of the Bounded interface.
// The deque is a slice with an amortized head index; PushFront may hold one
// chunk beyond the nominal capacity while the consumer retries a partial
// write.
type fifo struct {
	m sync.Mutex
	q [][]byte
	h int // head index into q
	c int // capacity
}

func (o *fifo) TryPush(chunk []byte) bool {
	o.m.Lock()
	defer o.m.Unlock()

	if len(o.q)-o.h >= o.c {
		return false
	}

	o.q = append(o.q, chunk)
	return true
}

func (o *fifo) TryPop() ([]byte, bool) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.h >= len(o.q) {
		return nil, false
	}

	chunk := o.q[o.h]
	o.q[o.h] = nil
	o.h++

	if o.h == len(o.q) {
		o.q = o.q[:0]
		o.h = 0
	} else if o.h > o.c {
		o.q = append(o.q[:0], o.q[o.h:]...)
		o.h = 0
	}

	return chunk, true
}

func (o *fifo) PushFront(chunk []byte) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.h > 0 {
		o.h--
		o.q[o.h] = chunk
		return
	}

	o.q = append(o.q, nil)
	copy(o.q[1:], o.q)
	o.q[0] = chunk
}

func (o *fifo) Len() int {
	o.m.Lock()
	defer o.m.Unlock()

	return len(o.q) - o.h
}

func (o *fifo) Cap() int {
	return o.c
}

func (o *fifo) Clear() int {
	o.m.Lock()
	defer o.m.Unlock()

	n := len(o.q) - o.h
	o.q = o.q[:0]
	o.h = 0
	return n
}
