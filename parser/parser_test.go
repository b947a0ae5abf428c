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

package parser_test

import (
	"bytes"
	"strings"

	libpsr "github.com/jincoder/serialtool/parser"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func feedAll(p libpsr.Parser, input []byte, chunk int) []libpsr.Packet {
	var res []libpsr.Packet

	for len(input) > 0 {
		n := chunk
		if n > len(input) {
			n = len(input)
		}
		res = append(res, p.Feed(input[:n])...)
		input = input[n:]
	}

	return res
}

var _ = Describe("Raw", func() {
	It("should emit one packet per feed with exact bytes", func() {
		p, err := libpsr.New(libpsr.TypeRaw, libpsr.Options{Port: "P1"})
		Expect(err).To(BeNil())

		pkts := p.Feed([]byte("abc"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryRaw))
		Expect(pkts[0].Bytes).To(Equal([]byte("abc")))
		Expect(pkts[0].Port).To(Equal("P1"))
	})

	It("should emit nothing for an empty feed", func() {
		p, _ := libpsr.New(libpsr.TypeRaw, libpsr.Options{})
		Expect(p.Feed(nil)).To(BeEmpty())
	})
})

var _ = Describe("Delimiter", func() {
	newDelim := func(delims ...string) libpsr.Parser {
		var d [][]byte
		for _, s := range delims {
			d = append(d, []byte(s))
		}

		p, err := libpsr.New(libpsr.TypeDelimiter, libpsr.Options{Delimiters: d})
		Expect(err).To(BeNil())
		return p
	}

	It("should emit one block per delimiter occurrence, delimiter included", func() {
		p := newDelim("\r\n")

		pkts := p.Feed([]byte("one\r\ntwo\r\npartial"))
		Expect(pkts).To(HaveLen(2))
		Expect(pkts[0].Bytes).To(Equal([]byte("one\r\n")))
		Expect(pkts[1].Bytes).To(Equal([]byte("two\r\n")))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryDelimBlock))
	})

	It("should keep partial trailing data buffered", func() {
		p := newDelim(";")

		Expect(p.Feed([]byte("abc"))).To(BeEmpty())
		pkts := p.Feed([]byte("def;"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Bytes).To(Equal([]byte("abcdef;")))
	})

	It("should find a delimiter split across two feeds", func() {
		p := newDelim("\r\n")

		Expect(p.Feed([]byte("block\r"))).To(BeEmpty())
		pkts := p.Feed([]byte("\nrest"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Bytes).To(Equal([]byte("block\r\n")))
	})

	It("should handle several delimiters", func() {
		p := newDelim(";", "|")

		pkts := p.Feed([]byte("a;b|c"))
		Expect(pkts).To(HaveLen(2))
		Expect(pkts[0].Bytes).To(Equal([]byte("a;")))
		Expect(pkts[1].Bytes).To(Equal([]byte("b|")))
	})

	It("should drop oldest bytes at the cap and count the overflow", func() {
		p, err := libpsr.New(libpsr.TypeDelimiter, libpsr.Options{
			Delimiters: [][]byte{[]byte(";")},
			MaxBuffer:  16,
		})
		Expect(err).To(BeNil())

		p.Feed(bytes.Repeat([]byte("x"), 64))
		Expect(p.Overflowed()).To(Equal(uint64(48)))

		pkts := p.Feed([]byte(";"))
		Expect(pkts).To(HaveLen(1))
		Expect(len(pkts[0].Bytes)).To(BeNumerically("<=", 17))
	})

	It("should refuse an empty delimiter list", func() {
		_, err := libpsr.New(libpsr.TypeDelimiter, libpsr.Options{})
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libpsr.ErrorNoDelimiter)).To(BeTrue())
	})

	It("should clear state on reset", func() {
		p := newDelim(";")
		p.Feed([]byte("pending"))
		p.Reset()

		pkts := p.Feed([]byte("a;"))
		Expect(pkts[0].Bytes).To(Equal([]byte("a;")))
	})
})

var _ = Describe("FixedLength", func() {
	It("should emit blocks of the exact configured length", func() {
		p, err := libpsr.New(libpsr.TypeFixedLength, libpsr.Options{FixedLength: 4})
		Expect(err).To(BeNil())

		pkts := p.Feed([]byte("abcdefghij"))
		Expect(pkts).To(HaveLen(2))
		Expect(pkts[0].Bytes).To(Equal([]byte("abcd")))
		Expect(pkts[1].Bytes).To(Equal([]byte("efgh")))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryFixedBlock))

		pkts = p.Feed([]byte("kl"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Bytes).To(Equal([]byte("ijkl")))
	})

	It("should reject lengths out of range", func() {
		_, err := libpsr.New(libpsr.TypeFixedLength, libpsr.Options{FixedLength: 0})
		Expect(err).ToNot(BeNil())

		_, err = libpsr.New(libpsr.TypeFixedLength, libpsr.Options{FixedLength: 5000})
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libpsr.ErrorBadFixedLength)).To(BeTrue())
	})
})

var _ = Describe("AT", func() {
	newAT := func() libpsr.Parser {
		p, err := libpsr.New(libpsr.TypeAT, libpsr.Options{Port: "P1"})
		Expect(err).To(BeNil())
		return p
	}

	It("should classify a final OK with its informational lines", func() {
		p := newAT()

		pkts := p.Feed([]byte("AT+CSQ\r\n+CSQ: 21,0\r\nOK\r\n"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryATOk))
		Expect(string(pkts[0].Bytes)).To(Equal("AT+CSQ\r\n+CSQ: 21,0\r\nOK\r\n"))
	})

	It("should classify a final ERROR", func() {
		p := newAT()

		pkts := p.Feed([]byte("AT+BAD\r\nERROR\r\n"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryATError))
	})

	It("should classify +CME ERROR responses", func() {
		p := newAT()

		pkts := p.Feed([]byte("AT+CPIN?\r\n+CME ERROR: 10\r\n"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryATCmeError))
	})

	It("should emit unsolicited result codes on their own", func() {
		p := newAT()

		pkts := p.Feed([]byte("+CREG: 1\r\n"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryURC))
		Expect(string(pkts[0].Bytes)).To(Equal("+CREG: 1\r\n"))
	})

	It("should emit the data prompt", func() {
		p := newAT()

		pkts := p.Feed([]byte("> "))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryPrompt))
	})

	It("should not misclassify informational lines containing ERROR", func() {
		p := newAT()

		pkts := p.Feed([]byte("AT+LOG\r\nlast ERROR was transient\r\nOK\r\n"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryATOk))
	})

	It("should be invariant under input chunking", func() {
		input := []byte("AT+CSQ\r\n+CSQ: 21,0\r\nOK\r\nAT+BAD\r\nERROR\r\n+CREG: 5\r\n")

		for _, chunk := range []int{1, 2, 3, 7, len(input)} {
			p := newAT()
			pkts := feedAll(p, input, chunk)

			Expect(pkts).To(HaveLen(3), "chunk size %d", chunk)
			Expect(pkts[0].Category).To(Equal(libpsr.CategoryATOk))
			Expect(pkts[1].Category).To(Equal(libpsr.CategoryATError))
			Expect(pkts[2].Category).To(Equal(libpsr.CategoryURC))
		}
	})
})

var _ = Describe("Hex", func() {
	It("should emit raw packets rendered as a hex dump", func() {
		p, err := libpsr.New(libpsr.TypeHex, libpsr.Options{})
		Expect(err).To(BeNil())

		pkts := p.Feed([]byte("Hello, hexdump!!"))
		Expect(pkts).To(HaveLen(1))
		Expect(pkts[0].Category).To(Equal(libpsr.CategoryRaw))
		Expect(pkts[0].Bytes).To(Equal([]byte("Hello, hexdump!!")))
		Expect(pkts[0].Text).To(ContainSubstring("|Hello, hexdump!!|"))
		Expect(pkts[0].Meta).To(HaveKeyWithValue("view", "hex"))
	})

	It("should pair each 16-byte window with its ASCII sidecar", func() {
		dump := libpsr.Dump([]byte("0123456789abcdef0123"), 0)
		lines := strings.Split(strings.TrimRight(dump, "\n"), "\n")

		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HavePrefix("00000000"))
		Expect(lines[0]).To(ContainSubstring("|0123456789abcdef|"))
		Expect(lines[1]).To(HavePrefix("00000010"))
		Expect(lines[1]).To(ContainSubstring("|0123|"))
	})

	It("should mask non-printable bytes in the sidecar", func() {
		dump := libpsr.Dump([]byte{0x00, 'A', 0xFF}, 0)
		Expect(dump).To(ContainSubstring("|.A.|"))
	})
})

var _ = Describe("Type", func() {
	It("should round-trip configuration notations", func() {
		for _, t := range []libpsr.Type{
			libpsr.TypeRaw, libpsr.TypeAT, libpsr.TypeDelimiter,
			libpsr.TypeFixedLength, libpsr.TypeHex,
		} {
			Expect(libpsr.ParseType(t.String())).To(Equal(t))
		}
	})

	It("should name every category", func() {
		Expect(libpsr.CategoryRaw.String()).To(Equal("RawPacket"))
		Expect(libpsr.CategoryATOk.String()).To(Equal("AT_OK"))
		Expect(libpsr.CategoryATError.String()).To(Equal("AT_ERROR"))
		Expect(libpsr.CategoryATCmeError.String()).To(Equal("AT_CME_ERROR"))
		Expect(libpsr.CategoryURC.String()).To(Equal("URC"))
		Expect(libpsr.CategoryPrompt.String()).To(Equal("Prompt"))
		Expect(libpsr.CategoryDelimBlock.String()).To(Equal("DelimBlock"))
		Expect(libpsr.CategoryFixedBlock.String()).To(Equal("FixedBlock"))
	})
})
