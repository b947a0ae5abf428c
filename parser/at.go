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

package parser

import (
	"bytes"
	"strings"
)

// atp groups modem response lines into classified packets.
//
// Lines accumulate until a final result code: a line reading exactly OK or
// ERROR terminates the pending group and classifies it, with the preceding
// informational lines as payload. A +CME ERROR: line terminates the group
// as AT_CME_ERROR. A line starting with '+' while no group is pending is an
// unsolicited result code emitted on its own. A lone '>' at line start with
// no terminator is the data prompt.
//
// Classification is line-bounded: the word ERROR inside an informational
// line never terminates a group, so a response quoting it is not
// misclassified.
type atp struct {
	o Options
	b accbuf
	g []byte // pending group: complete lines awaiting a final result code
}

func (o *atp) Feed(p []byte) []Packet {
	if len(p) == 0 {
		return nil
	}

	if o.b.c == 0 {
		o.b.c = o.o.MaxBuffer.Int()
	}

	o.b.append(p)

	var res []Packet

	for {
		i := bytes.Index(o.b.b, []byte("\r\n"))
		if i < 0 {
			break
		}

		line := make([]byte, i+2)
		copy(line, o.b.b[:i+2])
		o.b.b = o.b.b[:copy(o.b.b, o.b.b[i+2:])]

		if pkt, emitted := o.line(line); emitted {
			res = append(res, pkt)
		}
	}

	// a '>' prompt arrives without CRLF; emit it once nothing else pends
	if len(o.g) == 0 {
		if rem := strings.TrimRight(string(o.b.b), " "); rem == ">" {
			res = append(res, mkpkt(o.o.Port, CategoryPrompt, o.b.b))
			o.b.b = o.b.b[:0]
		}
	}

	return res
}

// line consumes one complete CRLF-terminated line and returns the packet it
// completes, if any.
func (o *atp) line(line []byte) (Packet, bool) {
	var (
		trim = strings.TrimSpace(string(line))
		grp  = func(cat Category) Packet {
			full := append(append([]byte{}, o.g...), line...)
			o.g = o.g[:0]
			return mkpkt(o.o.Port, cat, full)
		}
	)

	switch {
	case trim == "OK":
		return grp(CategoryATOk), true

	case trim == "ERROR":
		return grp(CategoryATError), true

	case strings.HasPrefix(trim, "+CME ERROR:"):
		return grp(CategoryATCmeError), true

	case strings.HasPrefix(trim, "+CMS ERROR:"):
		return grp(CategoryATCmeError), true

	case strings.HasPrefix(trim, "+") && len(o.g) == 0:
		return mkpkt(o.o.Port, CategoryURC, line), true
	}

	o.g = append(o.g, line...)

	if len(o.g) > o.b.c {
		over := len(o.g) - o.b.c
		o.g = o.g[:copy(o.g, o.g[over:])]
	}

	return Packet{}, false
}

func (o *atp) Reset() {
	o.b.reset()
	o.g = o.g[:0]
}

func (o *atp) Type() Type {
	return TypeAT
}

func (o *atp) Overflowed() uint64 {
	return o.b.dropped()
}
