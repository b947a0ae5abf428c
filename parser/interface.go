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

// Package parser turns received byte streams into packet records.
//
// Parsers are streaming: each Feed may emit zero or more packets and keeps
// partial data buffered for the next call, so the emitted packet sequence
// is independent of how the input was chunked. Every parser bounds its
// internal buffer and discards the oldest bytes on overflow; a parser never
// grows without limit.
//
// Five parsers cover the connection modes: Raw (pass-through), Delimiter
// (blocks bounded by byte sequences), FixedLength (exact-size blocks), AT
// (modem response classification) and Hex (raw packets rendered as hex dump
// by consumers).
package parser

import (
	"time"

	liberr "github.com/jincoder/serialtool/errors"
	libsiz "github.com/jincoder/serialtool/size"
)

// Category classifies an emitted packet record.
type Category uint8

const (
	// CategoryRaw is an unclassified byte packet.
	CategoryRaw Category = iota
	// CategoryATOk is a response group terminated by a final OK.
	CategoryATOk
	// CategoryATError is a response group terminated by a final ERROR.
	CategoryATError
	// CategoryATCmeError is a +CME ERROR: response.
	CategoryATCmeError
	// CategoryURC is an unsolicited result code line.
	CategoryURC
	// CategoryPrompt is the '>' data prompt.
	CategoryPrompt
	// CategoryDelimBlock is a block bounded by a configured delimiter.
	CategoryDelimBlock
	// CategoryFixedBlock is a block of the configured fixed length.
	CategoryFixedBlock
)

// String returns the category tag used by event payloads and color rules.
func (c Category) String() string {
	switch c {
	case CategoryATOk:
		return "AT_OK"
	case CategoryATError:
		return "AT_ERROR"
	case CategoryATCmeError:
		return "AT_CME_ERROR"
	case CategoryURC:
		return "URC"
	case CategoryPrompt:
		return "Prompt"
	case CategoryDelimBlock:
		return "DelimBlock"
	case CategoryFixedBlock:
		return "FixedBlock"
	default:
		return "RawPacket"
	}
}

// Packet is one structured record produced by parsing. Packets are
// short-lived values passed to subscribers; the Bytes slice is owned by the
// packet, never aliased into a parser buffer.
type Packet struct {
	// Port is the identifier of the connection the bytes arrived on.
	Port string
	// Time is the monotonic-clock-backed arrival timestamp.
	Time time.Time
	// Category is the parser classification.
	Category Category
	// Bytes is the exact packet payload.
	Bytes []byte
	// Text is the best-effort textual rendering of Bytes.
	Text string
	// Meta carries optional parser-specific annotations.
	Meta map[string]string
}

// Type selects a parser implementation.
type Type uint8

const (
	TypeRaw Type = iota
	TypeAT
	TypeDelimiter
	TypeFixedLength
	TypeHex
)

// String returns the configuration notation of the parser type.
func (t Type) String() string {
	switch t {
	case TypeAT:
		return "at"
	case TypeDelimiter:
		return "delimiter"
	case TypeFixedLength:
		return "fixed"
	case TypeHex:
		return "hex"
	default:
		return "raw"
	}
}

// ParseType returns the Type matching a configuration notation, defaulting
// to TypeRaw for unknown values.
func ParseType(s string) Type {
	switch s {
	case "at", "auto":
		return TypeAT
	case "delimiter", "delim":
		return TypeDelimiter
	case "fixed", "fixedlength":
		return TypeFixedLength
	case "hex":
		return TypeHex
	default:
		return TypeRaw
	}
}

// DefaultMaxBuffer is the accumulation hard cap used when the caller
// passes none. On overflow the oldest bytes are discarded.
const DefaultMaxBuffer = libsiz.SizeMega

// Options carries the per-connection parser configuration.
type Options struct {
	// Port is the connection identifier stamped on emitted packets.
	Port string
	// Delimiters is the block boundary list of the Delimiter parser.
	Delimiters [][]byte
	// FixedLength is the block size of the FixedLength parser (1..4096).
	FixedLength int
	// MaxBuffer caps the internal accumulation buffer.
	MaxBuffer libsiz.Size
}

// Parser is a streaming packet parser.
type Parser interface {
	// Feed consumes received bytes and returns the packets completed by
	// them, in arrival order.
	Feed(p []byte) []Packet

	// Reset discards all buffered state. The worker resets the active
	// parser when the connection switches parser type.
	Reset()

	// Type returns the implementation selector of this parser.
	Type() Type

	// Overflowed returns how many buffered bytes were discarded at the
	// accumulation cap since creation.
	Overflowed() uint64
}

// New returns the parser selected by t, configured with opt.
func New(t Type, opt Options) (Parser, liberr.Error) {
	if opt.MaxBuffer < 1 {
		opt.MaxBuffer = DefaultMaxBuffer
	}

	switch t {
	case TypeRaw:
		return &raw{o: opt}, nil

	case TypeHex:
		return &hexa{o: opt}, nil

	case TypeAT:
		return &atp{o: opt}, nil

	case TypeDelimiter:
		if len(opt.Delimiters) == 0 {
			return nil, ErrorNoDelimiter.Error(nil)
		}
		for _, d := range opt.Delimiters {
			if len(d) == 0 {
				return nil, ErrorNoDelimiter.Error(nil)
			}
		}
		return &dlm{o: opt}, nil

	case TypeFixedLength:
		if opt.FixedLength < 1 || opt.FixedLength > 4096 {
			return nil, ErrorBadFixedLength.Error(nil)
		}
		return &fxd{o: opt}, nil
	}

	return nil, ErrorBadType.Error(nil)
}
