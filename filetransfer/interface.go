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

// Package filetransfer streams a byte source to one port in chunks, under
// the transmit queue's backpressure.
//
// The engine never blocks the connection worker and never drops payload
// bytes: a refused enqueue backs off and retries, and only sustained queue
// saturation fails the job. The chunk size adapts to the port's baud rate
// so slow lines get small chunks and fast lines keep the queue busy.
//
// Every job registers its cancel function with the controller for the
// duration of the transfer; closing the port cancels the job atomically.
// Closing a different port never touches it.
package filetransfer

import (
	"io"
	"os"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libfpg "github.com/jincoder/serialtool/file/progress"
	liblog "github.com/jincoder/serialtool/logger"
	libsiz "github.com/jincoder/serialtool/size"
	"github.com/google/uuid"
)

// Status is the lifecycle state of one transfer job.
type Status uint8

const (
	StatusQueued Status = iota
	StatusRunning
	StatusPaused
	StatusCancelled
	StatusCompleted
	StatusFailed
)

// String returns the status tag used by progress events.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusCancelled:
		return "cancelled"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "queued"
	}
}

const (
	// retryBackoff is the pause after a refused enqueue.
	retryBackoff = 10 * time.Millisecond
	// retryMax is how many retries a refused enqueue gets before the
	// job fails.
	retryMax = 5
	// progressMinDelay spaces out file.progress events.
	progressMinDelay = 200 * time.Millisecond
	// progressMinRatio additionally allows a progress event per 0.1% step.
	progressMinRatio = 0.001
	// rateWindow is the sliding window of the throughput average.
	rateWindow = 10 * time.Second
)

// ChunkSize returns the adaptive chunk size for a port baud rate.
func ChunkSize(baud int) libsiz.Size {
	switch {
	case baud <= 57600:
		return 256 * libsiz.SizeUnit
	case baud <= 115200:
		return libsiz.SizeKilo
	default:
		return 8 * libsiz.SizeKilo
	}
}

// Job is one running or finished transfer.
type Job interface {
	// ID returns the unique job identifier.
	ID() uuid.UUID

	// Port returns the target port identifier.
	Port() string

	// Status returns the current lifecycle state.
	Status() Status

	// TotalBytes returns the source size, or a negative value when the
	// source size is unknown.
	TotalBytes() int64

	// SentBytes returns how many bytes were accepted by the port so far.
	SentBytes() int64

	// Cancel stops the job immediately and closes the source. Cancel is
	// idempotent and also invoked by the controller on port close.
	Cancel()

	// Pause suspends chunk submission; the job stays registered.
	Pause()

	// Resume restarts chunk submission after Pause.
	Resume()

	// Done closes when the job reaches a terminal state.
	Done() <-chan struct{}
}

// Engine starts transfer jobs against the connection controller.
type Engine interface {
	// Start streams src to the port until EOF. A non-positive total marks
	// the source size unknown; progress then carries no ETA. The port must
	// be open and free of any other transfer.
	Start(src io.ReadCloser, total int64, port string) (Job, liberr.Error)

	// StartFile streams a file to the port, reading it through an
	// instrumented source so progress callbacks and the optional rate cap
	// apply.
	StartFile(path string, port string) (Job, liberr.Error)

	// StartBytes streams an in-memory payload to the port.
	StartBytes(p []byte, port string) (Job, liberr.Error)

	// StartLines streams a file to the port one delimiter-bounded block
	// per chunk, so a text script reaches the device line by line under
	// the same backpressure rules.
	StartLines(path string, port string, delim rune) (Job, liberr.Error)

	// SetRateLimit caps the file read rate of future StartFile and
	// StartLines jobs. A zero size removes the cap.
	SetRateLimit(bytesPerSecond libsiz.Size)
}

// New returns an Engine sending through the given controller and
// publishing lifecycle events on the given bus. Job goroutines run under
// the given fault handler: a panicking job is captured there and fails
// that job instead of terminating the process.
func New(ctl libcnn.Controller, bus libbus.Bus, log liblog.FuncLog, flt errhdl.Handler) Engine {
	return &eng{
		c: ctl,
		b: bus,
		l: log,
		h: flt,
	}
}

// openSource opens one file as an instrumented progress source.
func openSource(path string) (libfpg.Progress, int64, error) {
	f, err := libfpg.New(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, 0, err
	}

	size, serr := f.SizeEOF()
	if serr != nil {
		_ = f.Close()
		return nil, 0, serr
	}

	return f, size, nil
}
