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

// Package dispatcher batches fast-path byte payloads for the UI.
//
// Workers deliver received bytes at wire rate; repainting a view per chunk
// would melt the UI thread. The dispatcher accumulates entries per port and
// flushes each port's buffer as one coalesced delivery on a fixed interval
// (30 ms by default, ~33 repaints/s). Within one port the flush preserves
// arrival order; across ports no order is promised.
//
// The fast path never blocks the worker: Push only appends to an in-memory
// buffer under a short-held lock.
package dispatcher

import (
	"time"
)

// DefaultFlushInterval is the batching interval used when the caller
// passes none.
const DefaultFlushInterval = 30 * time.Millisecond

// Sink consumes one coalesced delivery: all bytes of one port batched
// since the previous flush, with the arrival timestamp of the first byte.
type Sink func(port string, p []byte, first time.Time)

// Dispatcher is the time-batched delivery throttle between the fast path
// and a single UI consumer.
type Dispatcher interface {
	// Push appends one fast-path payload to the port's pending buffer.
	// Push never blocks on the consumer.
	Push(port string, ts time.Time, p []byte)

	// Start launches the flush timer. Start is idempotent.
	Start()

	// Stop halts the flush timer and discards pending buffers.
	Stop()

	// Pause suspends flushing; entries keep accumulating.
	Pause()

	// Resume restarts flushing after Pause.
	Resume()

	// Drain synchronously delivers every pending buffer before returning.
	Drain()
}

// New returns a Dispatcher flushing to the given sink on the given
// interval. A zero or negative interval falls back to
// DefaultFlushInterval.
func New(interval time.Duration, sink Sink) Dispatcher {
	if interval < 1 {
		interval = DefaultFlushInterval
	}

	return &dsp{
		i: interval,
		f: sink,
		b: make(map[string]*batch),
	}
}
