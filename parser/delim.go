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

import "bytes"

// dlm accumulates bytes and emits one DelimBlock per delimiter occurrence,
// delimiter included. Partial trailing data stays buffered; a delimiter
// split across two feeds is found once its tail arrives.
type dlm struct {
	o Options
	b accbuf
}

// next locates the earliest delimiter occurrence in the buffer and returns
// the block end offset, or -1 when no delimiter completes a block yet.
func (o *dlm) next() int {
	end := -1

	for _, d := range o.o.Delimiters {
		if i := bytes.Index(o.b.b, d); i >= 0 {
			if e := i + len(d); end == -1 || e < end {
				end = e
			}
		}
	}

	return end
}

func (o *dlm) Feed(p []byte) []Packet {
	if len(p) == 0 {
		return nil
	}

	if o.b.c == 0 {
		o.b.c = o.o.MaxBuffer.Int()
	}

	o.b.append(p)

	var res []Packet

	for {
		end := o.next()
		if end < 0 {
			return res
		}

		res = append(res, mkpkt(o.o.Port, CategoryDelimBlock, o.b.b[:end]))
		o.b.b = o.b.b[:copy(o.b.b, o.b.b[end:])]
	}
}

func (o *dlm) Reset() {
	o.b.reset()
}

func (o *dlm) Type() Type {
	return TypeDelimiter
}

func (o *dlm) Overflowed() uint64 {
	return o.b.dropped()
}
