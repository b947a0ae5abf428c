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

package transport

import (
	"sync"
	"time"

	liberr "github.com/jincoder/serialtool/errors"
)

// Responder builds the bytes a loopback endpoint feeds back for a write.
// Returning nil feeds nothing back.
type Responder func(p []byte) []byte

// Loopback is an in-memory Transport whose endpoint is a programmable
// echo device. It backs tests and the demo mode.
//
// Unlike real transports a Loopback is safe for concurrent use, so test
// code may inject bytes while a worker polls it.
type Loopback interface {
	Transport

	// SetResponder installs the function deciding what the endpoint feeds
	// back for each write. The default responder echoes the write untouched.
	SetResponder(fct Responder)

	// SetResponseDelay delays each responder feedback by d.
	SetResponseDelay(d time.Duration)

	// SetWriteDelay makes each Write call consume d before returning,
	// simulating a slow line for backpressure scenarios.
	SetWriteDelay(d time.Duration)

	// SetFailWrite makes every subsequent Write fail with ErrorIOWrite.
	SetFailWrite(fail bool)

	// Inject pushes bytes straight into the read side, as if the endpoint
	// had sent them spontaneously.
	Inject(p []byte)

	// Sent returns a copy of every byte written so far.
	Sent() []byte
}

// NewLoopback returns a Loopback transport. The endpoint echoes every
// write back to the read side until SetResponder changes that.
func NewLoopback() Loopback {
	o := &lpb{}
	o.f = func(p []byte) []byte {
		return p
	}
	return o
}

type lpb struct {
	m sync.Mutex
	o bool          // open flag
	r []byte        // pending read bytes
	s []byte        // all sent bytes
	f Responder     // responder
	d time.Duration // response delay
	w time.Duration // write delay
	e bool          // fail writes
}

func (o *lpb) Open() liberr.Error {
	o.m.Lock()
	defer o.m.Unlock()

	o.o = true
	return nil
}

func (o *lpb) Close() {
	o.m.Lock()
	defer o.m.Unlock()

	o.o = false
	o.r = nil
}

func (o *lpb) IsOpen() bool {
	o.m.Lock()
	defer o.m.Unlock()

	return o.o
}

func (o *lpb) SetResponder(fct Responder) {
	o.m.Lock()
	defer o.m.Unlock()

	o.f = fct
}

func (o *lpb) SetResponseDelay(d time.Duration) {
	o.m.Lock()
	defer o.m.Unlock()

	o.d = d
}

func (o *lpb) SetWriteDelay(d time.Duration) {
	o.m.Lock()
	defer o.m.Unlock()

	o.w = d
}

func (o *lpb) SetFailWrite(fail bool) {
	o.m.Lock()
	defer o.m.Unlock()

	o.e = fail
}

func (o *lpb) Inject(p []byte) {
	o.m.Lock()
	defer o.m.Unlock()

	o.r = append(o.r, p...)
}

func (o *lpb) Sent() []byte {
	o.m.Lock()
	defer o.m.Unlock()

	s := make([]byte, len(o.s))
	copy(s, o.s)
	return s
}

func (o *lpb) Read(p []byte) (int, liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	if !o.o {
		return 0, ErrorNotOpen.Error(nil)
	}

	if len(o.r) == 0 {
		return 0, nil
	}

	n := copy(p, o.r)
	o.r = o.r[n:]
	return n, nil
}

func (o *lpb) Write(p []byte) (int, liberr.Error) {
	o.m.Lock()

	if !o.o {
		o.m.Unlock()
		return 0, ErrorNotOpen.Error(nil)
	}

	if o.e {
		o.m.Unlock()
		return 0, ErrorIOWrite.Error(nil)
	}

	var (
		fct = o.f
		rsd = o.d
		wrd = o.w
	)

	o.s = append(o.s, p...)
	o.m.Unlock()

	if wrd > 0 {
		time.Sleep(wrd)
	}

	if fct != nil {
		if r := fct(p); len(r) > 0 {
			if rsd > 0 {
				go func(r []byte) {
					time.Sleep(rsd)
					o.Inject(r)
				}(append([]byte(nil), r...))
			} else {
				o.Inject(r)
			}
		}
	}

	return len(p), nil
}
