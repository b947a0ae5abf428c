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

// Package queue provides the bounded transmit queue between byte producers
// (manual send, broadcast, macro, file transfer) and one connection worker.
//
// All operations are non-blocking and O(1) under a short-held lock. A failed
// TryPush is the backpressure signal producers act on: file transfers back
// off and retry, manual sends surface the failure to the caller.
package queue

// DefaultCapacity is the chunk capacity used when the caller passes none.
const DefaultCapacity = 128

// Bounded is a thread-safe bounded FIFO of byte chunks with multiple
// producers and a single consumer.
type Bounded interface {
	// TryPush appends a chunk and reports success. A full queue refuses the
	// chunk and returns false without blocking.
	TryPush(chunk []byte) bool

	// TryPop removes and returns the head chunk, or (nil, false) on an
	// empty queue. TryPop never blocks.
	TryPop() ([]byte, bool)

	// PushFront puts a chunk back at the head of the queue. It is reserved
	// for the consumer requeueing the remainder of a partial write, so it
	// succeeds even on a full queue.
	PushFront(chunk []byte)

	// Len returns the current number of queued chunks.
	Len() int

	// Cap returns the maximum number of queued chunks.
	Cap() int

	// Clear discards all queued chunks and returns how many were dropped.
	Clear() int
}

// New returns a Bounded queue holding at most capacity chunks. A zero or
// negative capacity falls back to DefaultCapacity.
func New(capacity int) Bounded {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	return &fifo{
		c: capacity,
	}
}
