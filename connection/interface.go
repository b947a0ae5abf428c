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

// Package connection owns the live serial connections: one transport and
// one I/O worker per open port, a controller holding the registry, and the
// two delivery channels out of the data path.
//
// Received bytes leave a worker twice: typed events (state changes, errors,
// parsed packets, coalesced data) go to the event bus, and the raw payload
// goes straight to the controller's fast-path sink, bypassing bus handler
// overhead so a port can sustain megabytes per second. Per connection both
// channels preserve the arrival order.
//
// Teardown is cooperative: closing requests a worker stop, drains pending
// transmissions within a bounded delay, cancels any file transfer
// registered on the port first, and only then releases the transport.
package connection

import (
	"context"
	"time"

	libval "github.com/go-playground/validator/v10"
	libbuf "github.com/jincoder/serialtool/buffer"
	libdur "github.com/jincoder/serialtool/duration"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	liblog "github.com/jincoder/serialtool/logger"
	libpsr "github.com/jincoder/serialtool/parser"
	libque "github.com/jincoder/serialtool/queue"
	libsiz "github.com/jincoder/serialtool/size"
	libtpt "github.com/jincoder/serialtool/transport"
)

// State is the lifecycle state of one connection.
type State uint8

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
	StateError
)

// String returns the state notation used by events and logs.
func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateError:
		return "error"
	default:
		return "closed"
	}
}

// PortConfig describes one endpoint and its data-path configuration. It is
// immutable once bound to a worker: changing any field requires close then
// reopen.
type PortConfig struct {
	// ID is the connection identifier, unique per controller.
	ID string `json:"id" mapstructure:"id" validate:"required"`
	// Device is the OS endpoint the transport binds to; it defaults to ID.
	Device string `json:"device" mapstructure:"device"`
	// Baud is the line rate in bits per second.
	Baud int `json:"baud" mapstructure:"baud" validate:"required,min=50"`
	// DataBits is the number of data bits per frame.
	DataBits int `json:"data_bits" mapstructure:"data_bits" validate:"min=5,max=8"`
	// Parity is the parity notation (none, even, odd, mark, space).
	Parity string `json:"parity" mapstructure:"parity" validate:"oneof=none even odd mark space"`
	// StopBits is the stop bits notation (1, 1.5, 2).
	StopBits string `json:"stop_bits" mapstructure:"stop_bits" validate:"oneof=1 1.5 2"`
	// FlowControl is the flow control notation (none, rts/cts, xon/xoff, dsr/dtr).
	FlowControl string `json:"flow_control" mapstructure:"flow_control" validate:"oneof=none rts/cts xon/xoff dsr/dtr"`
	// ReadTimeout bounds one transport read; zero means poll.
	ReadTimeout libdur.Duration `json:"read_timeout" mapstructure:"read_timeout"`
	// Parser selects the packet parser notation (raw, at, delimiter, fixed, hex).
	Parser string `json:"parser" mapstructure:"parser"`
	// Delimiters configures the delimiter parser.
	Delimiters []string `json:"delimiters" mapstructure:"delimiters"`
	// FixedLength configures the fixed-length parser.
	FixedLength int `json:"fixed_length" mapstructure:"fixed_length" validate:"min=0,max=4096"`
	// RingCapacity caps the worker's receive ring buffer.
	RingCapacity libsiz.Size `json:"ring_capacity" mapstructure:"ring_capacity"`
	// TxQueueSize caps the transmit queue in chunks.
	TxQueueSize int `json:"tx_queue_size" mapstructure:"tx_queue_size"`
}

// withDefaults returns the config with unset fields resolved to their
// defaults, ready for validation.
func (c PortConfig) withDefaults() PortConfig {
	if c.Device == "" {
		c.Device = c.ID
	}
	if c.DataBits == 0 {
		c.DataBits = 8
	}
	if c.Parity == "" {
		c.Parity = "none"
	}
	if c.StopBits == "" {
		c.StopBits = "1"
	}
	if c.FlowControl == "" {
		c.FlowControl = "none"
	}
	if c.Parser == "" {
		c.Parser = "raw"
	}
	if c.RingCapacity < 1 {
		c.RingCapacity = libbuf.DefaultCapacity
	}
	if c.TxQueueSize < 1 {
		c.TxQueueSize = libque.DefaultCapacity
	}
	return c
}

// Validate checks the config against the schema and returns ErrorBadConfig
// wrapping the first failing field.
func (c PortConfig) Validate() liberr.Error {
	if err := libval.New().Struct(c.withDefaults()); err != nil {
		return ErrorBadConfig.Error(err)
	}

	if libpsr.ParseType(c.Parser) == libpsr.TypeDelimiter && len(c.Delimiters) == 0 {
		return ErrorBadConfig.Error(libpsr.ErrorNoDelimiter.Error(nil))
	}

	return nil
}

// Transport maps the port configuration onto the transport layer.
func (c PortConfig) Transport() libtpt.Config {
	c = c.withDefaults()

	return libtpt.Config{
		Device:      c.Device,
		Baud:        c.Baud,
		DataBits:    c.DataBits,
		Parity:      libtpt.ParseParity(c.Parity),
		StopBits:    libtpt.ParseStopBits(c.StopBits),
		FlowControl: libtpt.ParseFlowControl(c.FlowControl),
		ReadTimeout: c.ReadTimeout,
	}
}

// parserOptions maps the port configuration onto the parser layer.
func (c PortConfig) parserOptions() (libpsr.Type, libpsr.Options) {
	c = c.withDefaults()

	opt := libpsr.Options{
		Port:        c.ID,
		FixedLength: c.FixedLength,
	}

	for _, d := range c.Delimiters {
		opt.Delimiters = append(opt.Delimiters, []byte(d))
	}

	return libpsr.ParseType(c.Parser), opt
}

// FastPathSink receives every raw payload of every open connection. The
// controller forwards without touching the bytes; the sink must not block.
type FastPathSink func(port string, ts time.Time, p []byte)

// TransportFactory builds the transport of one connection. Tests and the
// demo mode install a loopback factory.
type TransportFactory func(cfg PortConfig) libtpt.Transport

// Controller is the lifecycle owner of all connections.
type Controller interface {
	// Open validates the config, acquires the endpoint and starts the
	// worker. Open failures leave the port closed and publish
	// port.open_failed.
	Open(cfg PortConfig) liberr.Error

	// Close tears one connection down: any file transfer registered on
	// the port is cancelled first, the worker drains and stops within
	// CloseTimeout, then the endpoint is released and port.closed is
	// published.
	Close(id string) liberr.Error

	// Shutdown closes all connections in parallel and returns once every
	// Close has returned. Each Close is bounded by CloseTimeout, after
	// which the connection is closed forcibly; the context deadline does
	// not shorten that bound.
	Shutdown(ctx context.Context)

	// Send enqueues bytes into one connection's transmit queue. A full
	// queue fails with ErrorQueueFull without blocking.
	Send(id string, p []byte) liberr.Error

	// Broadcast sends to every open connection, iterating a snapshot of
	// the registry, and returns the ids that accepted the payload.
	Broadcast(p []byte) []string

	// List returns a snapshot of the registered connection ids.
	List() []string

	// State returns the lifecycle state of one connection; unknown ids
	// read as StateClosed.
	State(id string) State

	// IsOpen reports whether one connection is currently open.
	IsOpen(id string) bool

	// SetCurrent designates the connection targeted operations default to.
	SetCurrent(id string) liberr.Error

	// Current returns the designated connection id, or the empty string.
	Current() string

	// SetFastPath installs the single fast-path sink.
	SetFastPath(sink FastPathSink)

	// RegisterTransfer binds a cancel function to the port for the
	// duration of a file transfer, so closing the port cancels the
	// transfer atomically. One transfer per port.
	RegisterTransfer(id string, cancel func()) liberr.Error

	// UnregisterTransfer removes the transfer binding of the port.
	UnregisterTransfer(id string)

	// RxBytes returns the monotonic received-byte counter of one port.
	RxBytes(id string) uint64

	// TxBytes returns the monotonic transmitted-byte counter of one port.
	TxBytes(id string) uint64

	// RxRate returns the window-averaged receive throughput of one port
	// in bytes per second.
	RxRate(id string) float64

	// ReadBuffered consumes up to max bytes from the port's receive ring
	// buffer, feeding inspector-style consumers outside the fast path.
	ReadBuffered(id string, max int) []byte

	// Config returns the configuration one connection was opened with.
	Config(id string) (PortConfig, bool)
}

// CloseTimeout bounds the graceful worker stop during Close.
const CloseTimeout = 2 * time.Second

// New returns a Controller publishing on the given bus. A nil factory
// builds real serial transports from the port configuration. Worker
// goroutines run under the given fault handler: a panicking worker is
// captured there and resolves its connection to Closed instead of
// terminating the process.
func New(bus libbus.Bus, log liblog.FuncLog, fct TransportFactory, flt errhdl.Handler) Controller {
	if fct == nil {
		fct = func(cfg PortConfig) libtpt.Transport {
			return libtpt.New(cfg.Transport())
		}
	}

	return &ctl{
		b: bus,
		l: log,
		f: fct,
		h: flt,
	}
}
