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

// fxd emits one FixedBlock per exactly FixedLength buffered bytes.
type fxd struct {
	o Options
	b accbuf
}

func (o *fxd) Feed(p []byte) []Packet {
	if len(p) == 0 {
		return nil
	}

	if o.b.c == 0 {
		o.b.c = o.o.MaxBuffer.Int()
	}

	o.b.append(p)

	var res []Packet

	for len(o.b.b) >= o.o.FixedLength {
		res = append(res, mkpkt(o.o.Port, CategoryFixedBlock, o.b.b[:o.o.FixedLength]))
		o.b.b = o.b.b[:copy(o.b.b, o.b.b[o.o.FixedLength:])]
	}

	return res
}

func (o *fxd) Reset() {
	o.b.reset()
}

func (o *fxd) Type() Type {
	return TypeFixedLength
}

func (o *fxd) Overflowed() uint64 {
	return o.b.dropped()
}
