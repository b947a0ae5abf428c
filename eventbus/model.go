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

package eventbus

import (
	"fmt"
	"path"
	"sync"
	"sync/atomic"

	liberr "github.com/jincoder/serialtool/errors"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
	"github.com/google/uuid"
	librat "golang.org/x/time/rate"
)

const (
	// traceRatePerSec bounds how many publishes per second the debug trace
	// may log; the excess is counted, not written.
	traceRatePerSec = 200
	traceBurst      = 50
)

// sub is one registered subscription.
type sub struct {
	i SubscriptionId
	p string
	h Handler
}

// bus is the internal implementation of the Bus interface.
// Subscriptions live in a slice so fan-out runs in registration order;
// wildcard matching is O(subscriptions) per publish, acceptable off the
// hot data path.
type bus struct {
	m sync.RWMutex
	s []sub
	t atomic.Bool   // debug trace enabled
	d atomic.Uint64 // trace lines suppressed by the rate limiter
	l atomic.Value  // liblog.FuncLog
	r *librat.Limiter
}

func (o *bus) logger() liblog.Logger {
	if i := o.l.Load(); i != nil {
		if f, k := i.(liblog.FuncLog); k && f != nil {
			return f()
		}
	}

	return nil
}

func (o *bus) Subscribe(pattern string, h Handler) (SubscriptionId, liberr.Error) {
	if h == nil {
		return uuid.Nil, ErrorParamsEmpty.Error(nil)
	}

	if _, err := path.Match(pattern, ""); err != nil {
		return uuid.Nil, ErrorBadPattern.Error(err)
	}

	id := uuid.New()

	o.m.Lock()
	o.s = append(o.s, sub{i: id, p: pattern, h: h})
	o.m.Unlock()

	return id, nil
}

func (o *bus) Unsubscribe(id SubscriptionId) {
	o.m.Lock()
	defer o.m.Unlock()

	for i := range o.s {
		if o.s[i].i == id {
			o.s = append(o.s[:i], o.s[i+1:]...)
			return
		}
	}
}

func (o *bus) Publish(topic string, payload interface{}) {
	o.trace(topic, payload)

	o.m.RLock()
	matched := make([]Handler, 0, len(o.s))
	for i := range o.s {
		if matchTopic(o.s[i].p, topic) {
			matched = append(matched, o.s[i].h)
		}
	}
	o.m.RUnlock()

	for _, h := range matched {
		o.deliver(topic, payload, h)
	}
}

func (o *bus) deliver(topic string, payload interface{}, h Handler) {
	defer func() {
		if rec := recover(); rec != nil {
			if log := o.logger(); log != nil {
				log.Error("event handler panic on topic '%s'", rec, topic)
			}
		}
	}()

	h(topic, payload)
}

func (o *bus) trace(topic string, payload interface{}) {
	if !o.t.Load() {
		return
	}

	log := o.logger()
	if log == nil {
		return
	}

	if !o.r.Allow() {
		o.d.Add(1)
		return
	}

	if n := o.d.Swap(0); n > 0 {
		log.Entry(loglvl.DebugLevel, "event trace suppressed %d publishes", n).Log()
	}

	log.Entry(loglvl.DebugLevel, "publish topic='%s' payload=%s", topic, summary(payload)).Log()
}

func (o *bus) SetDebugTrace(enable bool) {
	o.t.Store(enable)
}

func (o *bus) SetLogger(fct liblog.FuncLog) {
	if fct != nil {
		o.l.Store(fct)
	}
}

// summary renders a payload for the trace without dumping whole byte
// buffers into the log.
func summary(payload interface{}) string {
	switch v := payload.(type) {
	case nil:
		return "<nil>"
	case []byte:
		if len(v) > 32 {
			return fmt.Sprintf("[]byte(%d)", len(v))
		}
		return fmt.Sprintf("%q", v)
	case string:
		if len(v) > 64 {
			v = v[:64] + "..."
		}
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return v.String()
	}

	s := fmt.Sprintf("%+v", payload)
	if len(s) > 128 {
		s = s[:128] + "..."
	}

	return s
}
