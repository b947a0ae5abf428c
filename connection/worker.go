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

package connection

import (
	"sync/atomic"
	"time"

	libbuf "github.com/jincoder/serialtool/buffer"
	liberr "github.com/jincoder/serialtool/errors"
	libbus "github.com/jincoder/serialtool/eventbus"
	libpsr "github.com/jincoder/serialtool/parser"
	libpst "github.com/jincoder/serialtool/portstat"
	libque "github.com/jincoder/serialtool/queue"
	libtpt "github.com/jincoder/serialtool/transport"
)

const (
	// readMax bounds one transport read.
	readMax = 4096
	// idleSleep caps the CPU of an idle loop iteration.
	idleSleep = time.Millisecond
	// batchMax flushes the coalesced bus data event at this size.
	batchMax = 8 * 1024
	// batchDelay flushes the coalesced bus data event at this age.
	batchDelay = 30 * time.Millisecond
)

// wrk is the per-connection I/O loop. It drains the transmit queue, polls
// the transport, stores received bytes into the ring, feeds the parser,
// forwards raw payloads on the fast path and publishes typed events.
type wrk struct {
	c PortConfig
	t libtpt.Transport
	q libque.Bounded
	r libbuf.Ring
	p libpsr.Parser
	s libpst.Stats
	b libbus.Bus

	f func() FastPathSink // fast-path sink getter, installed by the controller
	e func(err liberr.Error)

	stp  atomic.Bool
	drn  atomic.Bool
	done chan struct{}
}

func newWorker(cfg PortConfig, t libtpt.Transport, prs libpsr.Parser, bus libbus.Bus, sink func() FastPathSink, fail func(liberr.Error)) *wrk {
	cfg = cfg.withDefaults()

	return &wrk{
		c:    cfg,
		t:    t,
		q:    libque.New(cfg.TxQueueSize),
		r:    libbuf.New(cfg.RingCapacity),
		p:    prs,
		s:    libpst.New(0),
		b:    bus,
		f:    sink,
		e:    fail,
		done: make(chan struct{}),
	}
}

// stop requests a cooperative loop exit. With drain the worker flushes
// pending transmissions before exiting; without, pending chunks are
// discarded.
func (o *wrk) stop(drain bool) {
	o.drn.Store(drain)
	o.stp.Store(true)
}

// run is the worker loop; it owns the transport until exit.
func (o *wrk) run() {
	defer close(o.done)

	var (
		buf = make([]byte, readMax)
		agg []byte
		agt time.Time
	)

	for !o.stp.Load() {
		idle := true

		if sent, fatal := o.pumpTx(); fatal {
			o.flushAgg(&agg, agt)
			return
		} else if sent {
			idle = false
		}

		n, err := o.t.Read(buf)
		if n > 0 {
			idle = false
			ts := time.Now()

			o.r.Write(buf[:n])
			o.s.AddRx(n)

			if snk := o.f(); snk != nil {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				snk(o.c.ID, ts, cp)
			}

			for _, pkt := range o.p.Feed(buf[:n]) {
				o.b.Publish(TopicPacket, pkt)
			}

			if len(agg) == 0 {
				agt = ts
			}
			agg = append(agg, buf[:n]...)
		}

		if err != nil {
			o.flushAgg(&agg, agt)
			o.fail(err)
			return
		}

		if len(agg) >= batchMax || (len(agg) > 0 && time.Since(agt) >= batchDelay) {
			o.flushAgg(&agg, agt)
		}

		if idle {
			time.Sleep(idleSleep)
		}
	}

	if o.drn.Load() {
		o.drain()
	} else {
		o.q.Clear()
	}

	o.flushAgg(&agg, agt)
}

// pumpTx writes queued chunks until the queue is empty, a write is
// partial, or a write fails. It reports whether anything was sent and
// whether the failure was fatal.
func (o *wrk) pumpTx() (sent bool, fatal bool) {
	for {
		chunk, ok := o.q.TryPop()
		if !ok {
			return sent, false
		}

		n, err := o.t.Write(chunk)
		if n > 0 {
			sent = true
			o.s.AddTx(n)
			o.b.Publish(TopicDataSent, EventData{
				Port:  o.c.ID,
				Time:  time.Now(),
				Bytes: chunk[:n],
			})
		}

		if err != nil {
			o.fail(err)
			return sent, true
		}

		if n < len(chunk) {
			// partial write: requeue the remainder and yield instead of
			// spinning on a saturated line
			o.q.PushFront(chunk[n:])
			return sent, false
		}
	}
}

// drain flushes pending transmissions on graceful close, bounded by the
// close timeout.
func (o *wrk) drain() {
	deadline := time.Now().Add(CloseTimeout)

	for time.Now().Before(deadline) {
		chunk, ok := o.q.TryPop()
		if !ok {
			return
		}

		n, err := o.t.Write(chunk)
		if err != nil {
			return
		}

		if n < len(chunk) {
			o.q.PushFront(chunk[n:])
		}
	}
}

func (o *wrk) flushAgg(agg *[]byte, ts time.Time) {
	if len(*agg) == 0 {
		return
	}

	o.b.Publish(TopicDataReceived, EventData{
		Port:  o.c.ID,
		Time:  ts,
		Bytes: *agg,
	})

	*agg = nil
}

func (o *wrk) fail(err liberr.Error) {
	if o.e != nil {
		o.e(err)
	}
}
