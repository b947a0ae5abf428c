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

package bandwidth

import (
	"sync"
	"time"

	libfpg "github.com/jincoder/serialtool/file/progress"
	libsiz "github.com/jincoder/serialtool/size"
)

// bw is the internal implementation of the BandWidth interface.
// The throttle window restarts on Reset and on the first increment.
type bw struct {
	m sync.Mutex
	l libsiz.Size
	t time.Time // window start
	n int64     // bytes seen in the window
}

func (o *bw) RegisterIncrement(fpg libfpg.Progress, fi libfpg.FctIncrement) {
	if fpg == nil {
		return
	}

	fpg.RegisterFctIncrement(func(size int64) {
		o.increment(size)

		if fi != nil {
			fi(size)
		}
	})
}

func (o *bw) RegisterReset(fpg libfpg.Progress, fr libfpg.FctReset) {
	if fpg == nil {
		return
	}

	fpg.RegisterFctReset(func(size, current int64) {
		o.reset()

		if fr != nil {
			fr(size, current)
		}
	})
}

// increment accounts size bytes and sleeps whatever delay keeps the
// window rate below the limit, capped to one second per call.
func (o *bw) increment(size int64) {
	if o.l < 1 || size < 1 {
		return
	}

	o.m.Lock()

	if o.t.IsZero() {
		o.t = time.Now()
	}

	o.n += size

	var (
		lim = o.l.Float64()
		due = time.Duration(float64(o.n) / lim * float64(time.Second))
		cur = time.Since(o.t)
	)

	o.m.Unlock()

	if wait := due - cur; wait > 0 {
		if wait > time.Second {
			wait = time.Second
		}

		time.Sleep(wait)
	}
}

func (o *bw) reset() {
	o.m.Lock()
	o.t = time.Time{}
	o.n = 0
	o.m.Unlock()
}
