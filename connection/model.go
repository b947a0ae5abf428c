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
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/jincoder/serialtool/atomic"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
	libpsr "github.com/jincoder/serialtool/parser"
	libtpt "github.com/jincoder/serialtool/transport"
	"golang.org/x/sync/errgroup"
)

// conn is the runtime triple of one connection: configuration, transport
// and worker, plus the lifecycle state and the transfer binding.
type conn struct {
	c PortConfig
	t libtpt.Transport
	w *wrk

	s atomic.Int32 // State

	m sync.Mutex
	x func() // registered file transfer cancel
}

func (o *conn) state() State {
	return State(o.s.Load())
}

func (o *conn) setState(s State) {
	o.s.Store(int32(s))
}

func (o *conn) bindTransfer(cancel func()) bool {
	o.m.Lock()
	defer o.m.Unlock()

	if o.x != nil {
		return false
	}

	o.x = cancel
	return true
}

func (o *conn) unbindTransfer() {
	o.m.Lock()
	o.x = nil
	o.m.Unlock()
}

func (o *conn) cancelTransfer() {
	o.m.Lock()
	cancel := o.x
	o.x = nil
	o.m.Unlock()

	if cancel != nil {
		cancel()
	}
}

// ctl is the internal implementation of the Controller interface.
type ctl struct {
	b libbus.Bus
	l liblog.FuncLog
	f TransportFactory
	h errhdl.Handler

	m   libatm.MapTyped[string, *conn]
	one sync.Once

	mu  sync.Mutex   // serializes open/close transitions
	cur atomic.Value // current connection id, string
	snk atomic.Value // FastPathSink
}

func (o *ctl) registry() libatm.MapTyped[string, *conn] {
	o.one.Do(func() {
		o.m = libatm.NewMapTyped[string, *conn]()
	})

	return o.m
}

func (o *ctl) log() liblog.Logger {
	if o.l != nil {
		return o.l()
	}

	return nil
}

func (o *ctl) sink() FastPathSink {
	if i := o.snk.Load(); i != nil {
		if s, k := i.(FastPathSink); k {
			return s
		}
	}

	return nil
}

// errKind renders a typed error as the event error kind tag.
func errKind(err liberr.Error) string {
	switch {
	case err == nil:
		return ""
	case err.IsCode(libtpt.ErrorOpenPermission):
		return "permission_denied"
	case err.IsCode(libtpt.ErrorOpenBusy):
		return "busy"
	case err.IsCode(libtpt.ErrorOpenNotFound):
		return "not_found"
	case err.IsCode(libtpt.ErrorOpenInvalid):
		return "invalid_parameters"
	case err.IsCode(libtpt.ErrorDisconnected):
		return "disconnected"
	case err.IsCode(libtpt.ErrorIOWrite):
		return "write"
	case err.IsCode(libtpt.ErrorIORead):
		return "io"
	default:
		return "other"
	}
}

func (o *ctl) Open(cfg PortConfig) liberr.Error {
	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return err
	}

	pt, po := cfg.parserOptions()
	prs, perr := libpsr.New(pt, po)
	if perr != nil {
		return ErrorBadConfig.Error(perr)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.registry().Load(cfg.ID); ok {
		return ErrorAlreadyOpen.Error(nil)
	}

	cn := &conn{
		c: cfg,
		t: o.f(cfg),
	}
	cn.setState(StateOpening)

	if err := cn.t.Open(); err != nil {
		o.b.Publish(TopicOpenFailed, EventError{
			Port:    cfg.ID,
			Kind:    errKind(err),
			Message: err.Error(),
		})
		return err
	}

	cn.w = newWorker(cfg, cn.t, prs, o.b, o.sink, func(err liberr.Error) {
		o.workerFailed(cfg.ID, err)
	})

	cn.setState(StateOpen)
	o.registry().Store(cfg.ID, cn)

	// the worker runs under the fault sink: a panic is captured and the
	// connection resolves to Closed instead of taking the process down
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				err := liberr.NewErrorRecovered("panic in worker '"+cfg.ID+"'", fmt.Sprint(rec))

				if o.h != nil {
					o.h.Capture("connection:worker:"+cfg.ID, err)
				}

				o.workerFailed(cfg.ID, ErrorWorkerPanic.Error(err))
			}
		}()

		cn.w.run()
	}()

	if log := o.log(); log != nil {
		log.Entry(loglvl.InfoLevel, "port '%s' opened at %d baud", cfg.ID, cfg.Baud).Log()
	}

	o.b.Publish(TopicOpened, EventOpened{Port: cfg.ID, Config: cfg})
	return nil
}

// workerFailed handles a fatal I/O failure reported by a worker: the
// transfer is cancelled, port.error is published, and the connection
// resolves from Error to Closed.
func (o *ctl) workerFailed(id string, err liberr.Error) {
	cn, ok := o.registry().LoadAndDelete(id)
	if !ok {
		return
	}

	cn.setState(StateError)
	cn.cancelTransfer()

	if log := o.log(); log != nil {
		log.Entry(loglvl.ErrorLevel, "port '%s' failed", id).ErrorAdd(true, err).Log()
	}

	o.b.Publish(TopicError, EventError{
		Port:    id,
		Kind:    errKind(err),
		Message: err.Error(),
	})

	cn.t.Close()
	cn.setState(StateClosed)
	o.clearCurrent(id)

	o.b.Publish(TopicClosed, EventClosed{Port: id})
}

func (o *ctl) Close(id string) liberr.Error {
	o.mu.Lock()
	defer o.mu.Unlock()

	cn, ok := o.registry().Load(id)
	if !ok {
		return ErrorUnknownPort.Error(nil)
	}

	if s := cn.state(); s == StateClosing || s == StateClosed {
		return nil
	}

	cn.setState(StateClosing)

	// cancel any registered transfer before the worker goes away, so the
	// transfer never writes into a dead queue
	cn.cancelTransfer()

	cn.w.stop(true)

	select {
	case <-cn.w.done:
	case <-time.After(CloseTimeout):
		// forced close: discard pending TX and release the endpoint to
		// unblock a stuck worker
		cn.w.q.Clear()

		if log := o.log(); log != nil {
			log.Entry(loglvl.WarnLevel, "port '%s' close forced after timeout", id).Log()
		}
	}

	cn.t.Close()
	cn.setState(StateClosed)
	o.registry().Delete(id)
	o.clearCurrent(id)

	o.b.Publish(TopicClosed, EventClosed{Port: id})
	return nil
}

func (o *ctl) Shutdown(ctx context.Context) {
	g, _ := errgroup.WithContext(ctx)

	for _, id := range o.List() {
		id := id
		g.Go(func() error {
			_ = o.Close(id)
			return nil
		})
	}

	_ = g.Wait()
}

func (o *ctl) Send(id string, p []byte) liberr.Error {
	cn, ok := o.registry().Load(id)
	if !ok {
		return ErrorUnknownPort.Error(nil)
	}

	if cn.state() != StateOpen {
		return ErrorNotOpen.Error(nil)
	}

	if !cn.w.q.TryPush(p) {
		return ErrorQueueFull.Error(nil)
	}

	return nil
}

func (o *ctl) Broadcast(p []byte) []string {
	var res []string

	// iterate a snapshot of the key set: concurrent open/close must not
	// disturb the fan-out
	for _, id := range o.List() {
		if o.Send(id, p) == nil {
			res = append(res, id)
		}
	}

	return res
}

func (o *ctl) List() []string {
	var res []string

	o.registry().Range(func(id string, _ *conn) bool {
		res = append(res, id)
		return true
	})

	return res
}

func (o *ctl) State(id string) State {
	if cn, ok := o.registry().Load(id); ok {
		return cn.state()
	}

	return StateClosed
}

func (o *ctl) IsOpen(id string) bool {
	return o.State(id) == StateOpen
}

func (o *ctl) SetCurrent(id string) liberr.Error {
	if id == "" {
		o.cur.Store("")
		return nil
	}

	if _, ok := o.registry().Load(id); !ok {
		return ErrorUnknownPort.Error(nil)
	}

	o.cur.Store(id)
	return nil
}

func (o *ctl) Current() string {
	if i := o.cur.Load(); i != nil {
		if s, k := i.(string); k {
			return s
		}
	}

	return ""
}

func (o *ctl) clearCurrent(id string) {
	if o.Current() == id {
		o.cur.Store("")
	}
}

func (o *ctl) SetFastPath(sink FastPathSink) {
	o.snk.Store(sink)
}

func (o *ctl) RegisterTransfer(id string, cancel func()) liberr.Error {
	cn, ok := o.registry().Load(id)
	if !ok {
		return ErrorUnknownPort.Error(nil)
	}

	if cn.state() != StateOpen {
		return ErrorNotOpen.Error(nil)
	}

	if !cn.bindTransfer(cancel) {
		return ErrorTransferBusy.Error(nil)
	}

	return nil
}

func (o *ctl) UnregisterTransfer(id string) {
	if cn, ok := o.registry().Load(id); ok {
		cn.unbindTransfer()
	}
}

func (o *ctl) RxBytes(id string) uint64 {
	if cn, ok := o.registry().Load(id); ok {
		return cn.w.s.RxBytes()
	}

	return 0
}

func (o *ctl) TxBytes(id string) uint64 {
	if cn, ok := o.registry().Load(id); ok {
		return cn.w.s.TxBytes()
	}

	return 0
}

func (o *ctl) RxRate(id string) float64 {
	if cn, ok := o.registry().Load(id); ok {
		return cn.w.s.RxRate()
	}

	return 0
}

func (o *ctl) Config(id string) (PortConfig, bool) {
	if cn, ok := o.registry().Load(id); ok {
		return cn.c, true
	}

	return PortConfig{}, false
}

func (o *ctl) ReadBuffered(id string, max int) []byte {
	if cn, ok := o.registry().Load(id); ok {
		return cn.w.r.ReadChunk(max)
	}

	return nil
}
