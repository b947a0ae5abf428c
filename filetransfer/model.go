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

package filetransfer

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libbdw "github.com/jincoder/serialtool/file/bandwidth"
	libbrc "github.com/jincoder/serialtool/ioutils/bufferReadCloser"
	libdlm "github.com/jincoder/serialtool/ioutils/delim"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
	libpst "github.com/jincoder/serialtool/portstat"
	libsiz "github.com/jincoder/serialtool/size"
	"github.com/google/uuid"
)

// eng is the internal implementation of the Engine interface.
type eng struct {
	c libcnn.Controller
	b libbus.Bus
	l liblog.FuncLog
	h errhdl.Handler

	m sync.Mutex
	r libsiz.Size // rate cap of file sources
}

func (o *eng) log() liblog.Logger {
	if o.l != nil {
		return o.l()
	}

	return nil
}

func (o *eng) SetRateLimit(bytesPerSecond libsiz.Size) {
	o.m.Lock()
	o.r = bytesPerSecond
	o.m.Unlock()
}

func (o *eng) rateLimit() libsiz.Size {
	o.m.Lock()
	defer o.m.Unlock()

	return o.r
}

func (o *eng) StartFile(path string, port string) (Job, liberr.Error) {
	src, size, err := openSource(path)
	if err != nil {
		return nil, ErrorSourceOpen.Error(err)
	}

	if lim := o.rateLimit(); lim > 0 {
		libbdw.New(lim).RegisterIncrement(src, nil)
	}

	return o.start(src, size, port)
}

func (o *eng) StartBytes(p []byte, port string) (Job, liberr.Error) {
	if len(p) == 0 {
		return nil, ErrorParamsEmpty.Error(nil)
	}

	src := libbrc.NewBuffer(bytes.NewBuffer(p), nil)
	return o.start(src, int64(len(p)), port)
}

func (o *eng) StartLines(path string, port string, delim rune) (Job, liberr.Error) {
	f, size, err := openSource(path)
	if err != nil {
		return nil, ErrorSourceOpen.Error(err)
	}

	if lim := o.rateLimit(); lim > 0 {
		libbdw.New(lim).RegisterIncrement(f, nil)
	}

	if delim == 0 {
		delim = '\n'
	}

	return o.start(libdlm.New(f, delim, 0), size, port)
}

func (o *eng) Start(src io.ReadCloser, total int64, port string) (Job, liberr.Error) {
	if src == nil {
		return nil, ErrorParamsEmpty.Error(nil)
	}

	return o.start(src, total, port)
}

func (o *eng) start(src io.ReadCloser, total int64, port string) (Job, liberr.Error) {
	if !o.c.IsOpen(port) {
		_ = src.Close()
		return nil, ErrorPortNotOpen.Error(nil)
	}

	var chunk = ChunkSize(115200)
	if cfg, ok := o.c.Config(port); ok {
		chunk = ChunkSize(cfg.Baud)
	}

	j := &job{
		i: uuid.New(),
		p: port,
		e: o,
		f: src,
		t: total,
		z: chunk.Int(),
		s: libpst.New(rateWindow),
		c: make(chan struct{}),
		d: make(chan struct{}),
	}
	j.st.Store(int32(StatusQueued))

	// registering with the controller makes port close cancel this job;
	// one transfer per port
	if err := o.c.RegisterTransfer(port, j.Cancel); err != nil {
		_ = src.Close()

		if err.IsCode(libcnn.ErrorTransferBusy) {
			return nil, ErrorPortBusy.Error(err)
		}

		return nil, ErrorPortNotOpen.Error(err)
	}

	// the job runs under the fault sink: a panic is captured and fails
	// this job instead of taking the process down
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				err := liberr.NewErrorRecovered("panic in transfer to '"+port+"'", fmt.Sprint(rec))

				if o.h != nil {
					o.h.Capture("filetransfer:job:"+port, err)
				}

				j.finish(StatusFailed)
				o.b.Publish(TopicError, EventError{Port: port, Kind: "panic", Message: err.Error()})
			}
		}()

		j.run()
	}()

	return j, nil
}

// job is the internal implementation of the Job interface.
type job struct {
	i uuid.UUID
	p string
	e *eng
	f io.ReadCloser
	t int64
	z int // chunk size

	s libpst.Stats

	n  atomic.Int64 // sent bytes
	st atomic.Int32 // Status
	pa atomic.Bool  // paused

	o  sync.Once     // cancel once
	fo sync.Once     // finish once
	c  chan struct{} // cancel signal
	d  chan struct{} // done
}

func (o *job) ID() uuid.UUID {
	return o.i
}

func (o *job) Port() string {
	return o.p
}

func (o *job) Status() Status {
	return Status(o.st.Load())
}

func (o *job) TotalBytes() int64 {
	return o.t
}

func (o *job) SentBytes() int64 {
	return o.n.Load()
}

func (o *job) Done() <-chan struct{} {
	return o.d
}

func (o *job) Cancel() {
	o.o.Do(func() {
		close(o.c)
	})
}

func (o *job) Pause() {
	// the run loop reports StatusPaused once the chunk in flight is
	// counted, so SentBytes is frozen while the status reads paused
	if o.Status() == StatusRunning {
		o.pa.Store(true)
	}
}

func (o *job) Resume() {
	o.pa.Store(false)
}

func (o *job) cancelled() bool {
	select {
	case <-o.c:
		return true
	default:
		return false
	}
}

// finish resolves the job into a terminal state exactly once; later
// calls (a panic unwinding after a normal finish) are ignored.
func (o *job) finish(st Status) {
	o.fo.Do(func() {
		o.st.Store(int32(st))
		_ = o.f.Close()
		o.e.c.UnregisterTransfer(o.p)
		close(o.d)
	})
}

func (o *job) run() {
	o.st.Store(int32(StatusRunning))

	var (
		buf  = make([]byte, o.z)
		last time.Time
		mark int64
	)

	for {
		if o.cancelled() {
			o.finish(StatusCancelled)
			o.e.b.Publish(TopicCancelled, EventResult{Port: o.p, Success: false, Message: "transfer cancelled"})
			return
		}

		if o.pa.Load() {
			o.st.Store(int32(StatusPaused))
			time.Sleep(retryBackoff)
			continue
		}

		o.st.CompareAndSwap(int32(StatusPaused), int32(StatusRunning))

		n, rerr := o.f.Read(buf)

		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			if !o.submit(chunk) {
				return
			}

			o.n.Add(int64(n))
			o.s.AddTx(n)

			if o.shouldReport(&last, &mark) {
				o.progress(StatusRunning)
			}
		}

		if rerr == io.EOF {
			o.finish(StatusCompleted)
			o.progress(StatusCompleted)
			o.e.b.Publish(TopicCompleted, EventResult{Port: o.p, Success: true, Message: "transfer completed"})

			if log := o.e.log(); log != nil {
				log.Entry(loglvl.InfoLevel, "transfer to '%s' completed, %d bytes", o.p, o.n.Load()).Log()
			}
			return
		} else if rerr != nil {
			o.finish(StatusFailed)
			o.e.b.Publish(TopicError, EventError{Port: o.p, Kind: "source_read", Message: rerr.Error()})
			return
		}
	}
}

// submit enqueues one chunk under backpressure: a refused enqueue backs
// off and retries, and a refusal after retryMax retries fails the job. It
// reports whether the chunk was accepted.
func (o *job) submit(chunk []byte) bool {
	for retry := 0; ; retry++ {
		if o.cancelled() {
			o.finish(StatusCancelled)
			o.e.b.Publish(TopicCancelled, EventResult{Port: o.p, Success: false, Message: "transfer cancelled"})
			return false
		}

		err := o.e.c.Send(o.p, chunk)
		if err == nil {
			return true
		}

		if !err.IsCode(libcnn.ErrorQueueFull) {
			o.finish(StatusFailed)
			o.e.b.Publish(TopicError, EventError{Port: o.p, Kind: "send", Message: err.Error()})
			return false
		}

		if retry >= retryMax {
			o.finish(StatusFailed)
			o.e.b.Publish(TopicError, EventError{Port: o.p, Kind: "queue_saturated", Message: err.Error()})
			return false
		}

		time.Sleep(retryBackoff)
	}
}

// shouldReport throttles progress events to one per progressMinDelay or
// per progressMinRatio of the total, whichever comes first.
func (o *job) shouldReport(last *time.Time, mark *int64) bool {
	if time.Since(*last) >= progressMinDelay {
		*last = time.Now()
		*mark = o.n.Load()
		return true
	}

	if o.t > 0 {
		if step := int64(float64(o.t) * progressMinRatio); step > 0 && o.n.Load()-*mark >= step {
			*last = time.Now()
			*mark = o.n.Load()
			return true
		}
	}

	return false
}

func (o *job) progress(st Status) {
	var (
		rate = o.s.TxRate()
		eta  float64
	)

	if o.t > 0 && rate > 0 {
		eta = float64(o.t-o.n.Load()) / rate
	}

	o.e.b.Publish(TopicProgress, EventProgress{
		Port:          o.p,
		TotalBytes:    o.t,
		SentBytes:     o.n.Load(),
		ThroughputBps: rate,
		ETASeconds:    eta,
		Status:        st,
	})
}
