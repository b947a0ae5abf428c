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
	"sync/atomic"
	"time"
	"unicode/utf8"
)

// mkpkt builds one packet record, copying the payload out of any parser
// buffer so subscribers never alias internal storage.
func mkpkt(port string, cat Category, payload []byte) Packet {
	b := make([]byte, len(payload))
	copy(b, payload)

	return Packet{
		Port:     port,
		Time:     time.Now(),
		Category: cat,
		Bytes:    b,
		Text:     decodeText(b),
	}
}

// decodeText renders bytes as text, replacing invalid UTF-8 windows so the
// UI always gets something printable.
func decodeText(p []byte) string {
	if utf8.Valid(p) {
		return string(p)
	}

	res := make([]rune, 0, len(p))
	for len(p) > 0 {
		r, n := utf8.DecodeRune(p)
		if r == utf8.RuneError && n == 1 {
			res = append(res, '.')
		} else {
			res = append(res, r)
		}
		p = p[n:]
	}

	return string(res)
}

// accbuf is the bounded accumulation buffer shared by the buffering
// parsers: appending past the cap discards the oldest bytes and counts
// the overflow.
type accbuf struct {
	b []byte
	c int
	d uint64 // dropped bytes, atomic
}

func (o *accbuf) append(p []byte) {
	if len(p) >= o.c {
		atomic.AddUint64(&o.d, uint64(len(o.b)+len(p)-o.c))
		o.b = append(o.b[:0], p[len(p)-o.c:]...)
		return
	}

	if over := len(o.b) + len(p) - o.c; over > 0 {
		atomic.AddUint64(&o.d, uint64(over))
		o.b = o.b[:copy(o.b, o.b[over:])]
	}

	o.b = append(o.b, p...)
}

func (o *accbuf) dropped() uint64 {
	return atomic.LoadUint64(&o.d)
}

func (o *accbuf) reset() {
	o.b = o.b[:0]
}
