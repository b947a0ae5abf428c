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

// Package transport abstracts a byte stream to one serial endpoint.
//
// A Transport owns exactly one endpoint and is driven by exactly one owner
// (the connection worker); it performs no internal locking beyond what the
// backend requires. Implementations:
//   - serial ports backed by go.bug.st/serial (New)
//   - an in-memory loopback used by tests and the demo mode (NewLoopback)
//
// Read returns (0, nil) on timeout: an idle line is not an error. Write may
// be partial; the caller retries the remainder. All failures are surfaced as
// typed errors.CodeError values, never swallowed.
package transport

import (
	libdur "github.com/jincoder/serialtool/duration"
	liberr "github.com/jincoder/serialtool/errors"
)

// Parity is the serial parity mode of an endpoint.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
	ParityMark
	ParitySpace
)

// String returns the parity mode as its configuration notation.
func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	case ParityMark:
		return "mark"
	case ParitySpace:
		return "space"
	default:
		return "none"
	}
}

// ParseParity returns the Parity matching the given configuration notation,
// defaulting to ParityNone for unknown values.
func ParseParity(s string) Parity {
	switch s {
	case "even", "E", "e":
		return ParityEven
	case "odd", "O", "o":
		return ParityOdd
	case "mark", "M", "m":
		return ParityMark
	case "space", "S", "s":
		return ParitySpace
	default:
		return ParityNone
	}
}

// StopBits is the number of serial stop bits of an endpoint.
type StopBits uint8

const (
	StopBitsOne StopBits = iota
	StopBitsOneHalf
	StopBitsTwo
)

// String returns the stop bits as their configuration notation.
func (s StopBits) String() string {
	switch s {
	case StopBitsOneHalf:
		return "1.5"
	case StopBitsTwo:
		return "2"
	default:
		return "1"
	}
}

// ParseStopBits returns the StopBits matching the given configuration
// notation, defaulting to StopBitsOne for unknown values.
func ParseStopBits(s string) StopBits {
	switch s {
	case "1.5":
		return StopBitsOneHalf
	case "2":
		return StopBitsTwo
	default:
		return StopBitsOne
	}
}

// FlowControl is the flow control mode of an endpoint.
type FlowControl uint8

const (
	FlowNone FlowControl = iota
	FlowRTSCTS
	FlowXonXoff
	FlowDSRDTR
)

// String returns the flow control mode as its configuration notation.
func (f FlowControl) String() string {
	switch f {
	case FlowRTSCTS:
		return "rts/cts"
	case FlowXonXoff:
		return "xon/xoff"
	case FlowDSRDTR:
		return "dsr/dtr"
	default:
		return "none"
	}
}

// ParseFlowControl returns the FlowControl matching the given configuration
// notation, defaulting to FlowNone for unknown values.
func ParseFlowControl(s string) FlowControl {
	switch s {
	case "rts/cts", "rtscts":
		return FlowRTSCTS
	case "xon/xoff", "xonxoff":
		return FlowXonXoff
	case "dsr/dtr", "dsrdtr":
		return FlowDSRDTR
	default:
		return FlowNone
	}
}

// Config describes the endpoint a Transport binds to. It is immutable once
// the transport is opened; changing parameters requires close then reopen.
type Config struct {
	// Device is the OS path or name of the endpoint ("/dev/ttyUSB0", "COM3").
	Device string
	// Baud is the line rate in bits per second.
	Baud int
	// DataBits is the number of data bits per frame (5..8).
	DataBits int
	// Parity is the parity mode.
	Parity Parity
	// StopBits is the number of stop bits.
	StopBits StopBits
	// FlowControl is the flow control mode.
	FlowControl FlowControl
	// ReadTimeout bounds a single Read call; an expired timeout returns
	// zero bytes with no error.
	ReadTimeout libdur.Duration
}

// Transport is a byte stream to one endpoint.
//
// A Transport is single-threaded per instance: external synchronization is
// the owner's responsibility.
type Transport interface {
	// Open acquires the endpoint. Failures are typed: ErrorOpenPermission,
	// ErrorOpenBusy, ErrorOpenNotFound, ErrorOpenInvalid or ErrorOpenOther.
	Open() liberr.Error

	// Close releases the endpoint. Close is idempotent.
	Close()

	// IsOpen reports whether the endpoint is currently acquired.
	IsOpen() bool

	// Read fills p with available bytes and returns how many were stored.
	// An expired read timeout returns (0, nil). A removed device or
	// signaled EOF returns ErrorDisconnected; any other failure ErrorIORead.
	Read(p []byte) (int, liberr.Error)

	// Write sends p and returns how many bytes the endpoint accepted.
	// Partial writes are allowed; the caller must retry the remainder.
	Write(p []byte) (int, liberr.Error)
}

// New returns a Transport bound to a real serial endpoint described by cfg.
// The endpoint is not acquired until Open is called.
func New(cfg Config) Transport {
	return &srl{
		c: cfg,
	}
}
