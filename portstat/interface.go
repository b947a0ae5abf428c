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

// Package portstat tracks per-connection byte counters and window-averaged
// throughput for telemetry.
//
// Counters are monotonic; throughput is averaged over a sliding window of
// one-second buckets, so an idle line decays to zero instead of keeping the
// lifetime average.
package portstat

import (
	"time"
)

// DefaultWindow is the sliding window used when the caller passes none.
const DefaultWindow = 10 * time.Second

// Stats tracks the RX/TX byte counters and throughput of one connection.
// All methods are safe for concurrent use.
type Stats interface {
	// AddRx accounts n received bytes.
	AddRx(n int)

	// AddTx accounts n transmitted bytes.
	AddTx(n int)

	// RxBytes returns the monotonic count of received bytes.
	RxBytes() uint64

	// TxBytes returns the monotonic count of transmitted bytes.
	TxBytes() uint64

	// RxRate returns the received bytes per second averaged over the window.
	RxRate() float64

	// TxRate returns the transmitted bytes per second averaged over the window.
	TxRate() float64

	// Reset clears counters and window buckets.
	Reset()
}

// New returns a Stats tracker averaging rates over the given window. A
// window under one second falls back to DefaultWindow.
func New(window time.Duration) Stats {
	if window < time.Second {
		window = DefaultWindow
	}

	n := int(window / time.Second)

	return &sts{
		rx: newCounter(n),
		tx: newCounter(n),
	}
}
