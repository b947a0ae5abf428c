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

package portstat

import (
	"sync"
	"time"
)

// counter is one direction of a Stats tracker: a monotonic total plus a
// ring of one-second buckets for the sliding window.
type counter struct {
	m sync.Mutex
	t uint64   // monotonic total
	b []uint64 // per-second buckets
	s []int64  // unix second each bucket belongs to
}

func newCounter(buckets int) *counter {
	return &counter{
		b: make([]uint64, buckets),
		s: make([]int64, buckets),
	}
}

func (o *counter) add(n int, now time.Time) {
	if n < 1 {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	sec := now.Unix()
	i := int(sec % int64(len(o.b)))

	if o.s[i] != sec {
		o.s[i] = sec
		o.b[i] = 0
	}

	o.b[i] += uint64(n)
	o.t += uint64(n)
}

func (o *counter) total() uint64 {
	o.m.Lock()
	defer o.m.Unlock()

	return o.t
}

func (o *counter) rate(now time.Time) float64 {
	o.m.Lock()
	defer o.m.Unlock()

	var (
		sum uint64
		sec = now.Unix()
		min = sec - int64(len(o.b)) + 1
	)

	for i := range o.b {
		if o.s[i] >= min && o.s[i] <= sec {
			sum += o.b[i]
		}
	}

	return float64(sum) / float64(len(o.b))
}

func (o *counter) reset() {
	o.m.Lock()
	defer o.m.Unlock()

	o.t = 0
	for i := range o.b {
		o.b[i] = 0
		o.s[i] = 0
	}
}

// sts is the internal implementation of the Stats interface.
type sts struct {
	rx *counter
	tx *counter
}

func (o *sts) AddRx(n int) {
	o.rx.add(n, time.Now())
}

func (o *sts) AddTx(n int) {
	o.tx.add(n, time.Now())
}

func (o *sts) RxBytes() uint64 {
	return o.rx.total()
}

func (o *sts) TxBytes() uint64 {
	return o.tx.total()
}

func (o *sts) RxRate() float64 {
	return o.rx.rate(time.Now())
}

func (o *sts) TxRate() float64 {
	return o.tx.rate(time.Now())
}

func (o *sts) Reset() {
	o.rx.reset()
	o.tx.reset()
}
