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

package dispatcher

import (
	"sync"
	"time"
)

// batch is the pending coalesced delivery of one port.
type batch struct {
	p []byte
	t time.Time // arrival of the first byte in the batch
}

// dsp is the internal implementation of the Dispatcher interface.
type dsp struct {
	m sync.Mutex
	i time.Duration
	f Sink
	b map[string]*batch
	s chan struct{} // stop signal, nil when not running
	p bool          // paused
}

func (o *dsp) Push(port string, ts time.Time, p []byte) {
	if len(p) == 0 {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	if a, ok := o.b[port]; ok {
		a.p = append(a.p, p...)
		return
	}

	o.b[port] = &batch{
		p: append([]byte(nil), p...),
		t: ts,
	}
}

func (o *dsp) Start() {
	o.m.Lock()
	defer o.m.Unlock()

	if o.s != nil {
		return
	}

	o.s = make(chan struct{})
	go o.run(o.s)
}

func (o *dsp) Stop() {
	o.m.Lock()

	if o.s != nil {
		close(o.s)
		o.s = nil
	}

	o.b = make(map[string]*batch)
	o.m.Unlock()
}

func (o *dsp) Pause() {
	o.m.Lock()
	o.p = true
	o.m.Unlock()
}

func (o *dsp) Resume() {
	o.m.Lock()
	o.p = false
	o.m.Unlock()
}

func (o *dsp) Drain() {
	o.flush()
}

func (o *dsp) run(stop chan struct{}) {
	tck := time.NewTicker(o.i)
	defer tck.Stop()

	for {
		select {
		case <-stop:
			return
		case <-tck.C:
			o.m.Lock()
			paused := o.p
			o.m.Unlock()

			if !paused {
				o.flush()
			}
		}
	}
}

// flush swaps the pending buffers out under the lock, then delivers
// without holding it, so a slow sink never blocks Push.
func (o *dsp) flush() {
	o.m.Lock()

	if len(o.b) == 0 {
		o.m.Unlock()
		return
	}

	pending := o.b
	o.b = make(map[string]*batch)
	o.m.Unlock()

	if o.f == nil {
		return
	}

	for port, a := range pending {
		o.f(port, a.p, a.t)
	}
}
