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

// Package datalog persists TX/RX byte streams to disk.
//
// Three formats cover the capture needs: Raw concatenates payload bytes
// with no framing, HexDump writes one line per 16-byte window with a
// direction prefix, and PCAP writes classic capture records a protocol
// analyzer can read. Full-duplex capture stays demultiplexable in every
// format: hex lines carry their direction prefix, and each PCAP record
// payload starts with one direction byte (0x00 RX, 0x01 TX) under
// LINKTYPE_USER0.
//
// Files rotate at a size bound: the active file is gzip-compressed into
// the numbered backlog as <path>.1.gz, older backlog files shift up one
// number, and the retention count caps how many of them stay on disk.
package datalog

import (
	"io"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	liberr "github.com/jincoder/serialtool/errors"
	libbus "github.com/jincoder/serialtool/eventbus"
	liblog "github.com/jincoder/serialtool/logger"
	libsiz "github.com/jincoder/serialtool/size"
)

// Format selects the on-disk capture format.
type Format uint8

const (
	FormatRaw Format = iota
	FormatHexDump
	FormatPcap
)

// String returns the configuration notation of the format.
func (f Format) String() string {
	switch f {
	case FormatHexDump:
		return "hex"
	case FormatPcap:
		return "pcap"
	default:
		return "raw"
	}
}

// ParseFormat returns the Format matching a configuration notation,
// defaulting to FormatRaw for unknown values.
func ParseFormat(s string) Format {
	switch s {
	case "hex", "hexdump":
		return FormatHexDump
	case "pcap":
		return FormatPcap
	default:
		return FormatRaw
	}
}

// Direction tags one record as received or transmitted.
type Direction uint8

const (
	DirRX Direction = iota
	DirTX
)

// String returns the direction prefix used by the hex dump format.
func (d Direction) String() string {
	if d == DirTX {
		return "TX"
	}

	return "RX"
}

// DefaultMaxFileBytes is the rotation bound used when the caller passes none.
const DefaultMaxFileBytes = 10 * libsiz.SizeMega

// DefaultKeepFiles is the rotated file retention used when the caller
// passes none.
const DefaultKeepFiles = 5

// Config describes one capture destination.
type Config struct {
	// Path is the active capture file.
	Path string
	// Format selects the on-disk format.
	Format Format
	// MaxFileBytes rotates the active file past this size.
	MaxFileBytes libsiz.Size
	// KeepFiles caps how many rotated files stay on disk.
	KeepFiles int
	// IncludeTx also captures the transmit direction.
	IncludeTx bool
}

// Logger persists capture records.
type Logger interface {
	// Record persists one directional payload. TX records are dropped
	// unless the capture includes the transmit direction.
	Record(dir Direction, port string, ts time.Time, p []byte) liberr.Error

	// SubscribeTo attaches the capture to the bus data topics
	// (port.data_received, port.data_sent).
	SubscribeTo(bus libbus.Bus)

	// AddMirror registers an additional live destination receiving the
	// same record stream as the capture file.
	AddMirror(w io.Writer)

	// Close flushes and closes the active file. Close is idempotent.
	Close() error
}

// New returns a Logger capturing to the configured destination. The
// destination directory is created when missing.
func New(cfg Config, log liblog.FuncLog) (Logger, liberr.Error) {
	if cfg.Path == "" {
		return nil, ErrorParamsEmpty.Error(nil)
	}

	if cfg.MaxFileBytes < 1 {
		cfg.MaxFileBytes = DefaultMaxFileBytes
	}

	if cfg.KeepFiles < 1 {
		cfg.KeepFiles = DefaultKeepFiles
	}

	o := &dlg{
		c: cfg,
		l: log,
	}

	if err := o.open(); err != nil {
		return nil, err
	}

	return o, nil
}

// handler adapts a bus data event into one capture record.
func handler(o Logger, dir Direction) libbus.Handler {
	return func(_ string, payload interface{}) {
		if ev, k := payload.(libcnn.EventData); k {
			_ = o.Record(dir, ev.Port, ev.Time, ev.Bytes)
		}
	}
}
