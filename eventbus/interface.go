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

// Package eventbus is the slow-path topic bus carrying typed control
// events between components: state changes, errors, parsed packets and
// progress. The per-byte hot path bypasses the bus through the
// controller's fast-path sink.
//
// Subscriptions use exact topics or shell-style wildcard patterns
// ("port.*", "file.?"). Publish fans out synchronously in subscription
// order on the publisher's goroutine; handlers that must cross to the UI
// thread go through the dispatcher package. A panicking handler is
// recovered and logged, never aborting the fan-out.
package eventbus

import (
	"path"

	liberr "github.com/jincoder/serialtool/errors"
	liblog "github.com/jincoder/serialtool/logger"
	"github.com/google/uuid"
	librat "golang.org/x/time/rate"
)

// Handler consumes one published event.
type Handler func(topic string, payload interface{})

// SubscriptionId identifies one subscription for Unsubscribe.
type SubscriptionId = uuid.UUID

// Bus is a topic-based publish/subscribe fabric with wildcard patterns
// and a debug trace.
type Bus interface {
	// Subscribe registers a handler for every topic matching the given
	// pattern. Patterns support shell-style wildcards '*' and '?'; a
	// malformed pattern fails with ErrorBadPattern. Exact and wildcard
	// subscriptions coexist.
	Subscribe(pattern string, h Handler) (SubscriptionId, liberr.Error)

	// Unsubscribe removes one subscription. Unknown ids are ignored.
	Unsubscribe(id SubscriptionId)

	// Publish delivers the payload synchronously to every matching handler
	// in subscription order. Handler panics are recovered and logged.
	Publish(topic string, payload interface{})

	// SetDebugTrace toggles the structured trace line written for every
	// publish. Tracing is rate-limited so a hot topic cannot flood the log.
	SetDebugTrace(enable bool)

	// SetLogger installs the logger used by the debug trace and for
	// recovered handler panics.
	SetLogger(fct liblog.FuncLog)
}

// New returns an empty Bus.
func New() Bus {
	return &bus{
		r: librat.NewLimiter(librat.Limit(traceRatePerSec), traceBurst),
	}
}

// matchTopic reports whether one topic matches one subscription pattern.
// Patterns without wildcards compare directly; others go through
// shell-style matching.
func matchTopic(pattern, topic string) bool {
	if pattern == topic {
		return true
	}

	ok, err := path.Match(pattern, topic)
	return err == nil && ok
}
