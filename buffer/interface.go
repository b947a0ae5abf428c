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

// Package buffer provides the fixed-capacity byte ring each connection
// worker stores received bytes into.
//
// The ring never grows: when a write does not fit, the oldest bytes are
// discarded first and a monotonic drop counter advances by the number of
// bytes lost. Reads return contiguous copies. The ring is safe for one
// producer and one consumer running on different goroutines.
package buffer

import (
	libsiz "github.com/jincoder/serialtool/size"
)

// DefaultCapacity is the ring capacity used when the caller passes none.
const DefaultCapacity = 512 * libsiz.SizeKilo

// Ring is a fixed-capacity byte-oriented circular buffer with a
// drop-oldest overflow policy.
type Ring interface {
	// Write stores p into the ring. If free space is insufficient the
	// oldest bytes are discarded first; if p alone exceeds the capacity
	// only its trailing capacity bytes are kept. It returns how many bytes
	// of p were stored and how many bytes (old or new) were dropped.
	Write(p []byte) (stored int, dropped int)

	// ReadChunk returns up to max contiguous bytes, possibly fewer when the
	// stored window wraps the ring edge. An empty ring returns nil.
	ReadChunk(max int) []byte

	// Available returns the number of stored unread bytes.
	Available() int

	// Capacity returns the fixed ring capacity in bytes.
	Capacity() int

	// Dropped returns the monotonic count of bytes discarded on overflow.
	Dropped() uint64

	// Reset discards all stored bytes. The drop counter is preserved.
	Reset()
}

// New returns a Ring with the given capacity. A zero or negative capacity
// falls back to DefaultCapacity.
func New(capacity libsiz.Size) Ring {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	return &rng{
		b: make([]byte, capacity.Int()),
	}
}
