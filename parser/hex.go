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
	"fmt"
	"strings"

	enchex "github.com/jincoder/serialtool/encoding/hexa"
)

// hexa emits raw byte packets whose Text is the hex dump view: the
// consumer displays each 16-byte window with its ASCII sidecar.
type hexa struct {
	o Options
}

func (o *hexa) Feed(p []byte) []Packet {
	if len(p) == 0 {
		return nil
	}

	pkt := mkpkt(o.o.Port, CategoryRaw, p)
	pkt.Text = Dump(pkt.Bytes, 0)
	pkt.Meta = map[string]string{"view": "hex"}

	return []Packet{pkt}
}

func (o *hexa) Reset() {}

func (o *hexa) Type() Type {
	return TypeHex
}

func (o *hexa) Overflowed() uint64 {
	return 0
}

// Dump renders bytes as hex dump lines: offset, sixteen hex columns and the
// ASCII sidecar. The base offset shifts the printed offsets, letting a
// caller dump one stream across multiple calls.
func Dump(p []byte, base int64) string {
	var b strings.Builder

	for off := 0; off < len(p); off += 16 {
		end := off + 16
		if end > len(p) {
			end = len(p)
		}

		win := p[off:end]
		b.WriteString(fmt.Sprintf("%08x  ", base+int64(off)))

		h := enchex.New().Encode(win)
		for i := 0; i < 16; i++ {
			if i < len(win) {
				b.WriteByte(h[2*i])
				b.WriteByte(h[2*i+1])
			} else {
				b.WriteString("  ")
			}
			b.WriteByte(' ')
			if i == 7 {
				b.WriteByte(' ')
			}
		}

		b.WriteString(" |")
		for _, c := range win {
			if c >= 0x20 && c < 0x7F {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}

	return b.String()
}
