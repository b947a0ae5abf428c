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

// Package command assembles on-wire bytes from user command text.
//
// Format is a pure function: prefix and suffix are arguments, never read
// from configuration, so every caller (manual send, macro steps) composes
// bytes the same way. In hex mode the text is a hex notation; otherwise the
// text is UTF-8 encoded with optional prefix/suffix whose escape sequences
// (\r, \n, \t, \0) are resolved.
package command

import (
	"strings"

	enchex "github.com/jincoder/serialtool/encoding/hexa"
	liberr "github.com/jincoder/serialtool/errors"
)

// Format assembles the bytes to transmit for the given command text.
//
// With hexMode, text is parsed as hexadecimal: whitespace and commas are
// separators, every group may carry an optional 0x prefix, and the digits
// of all groups concatenate into the emitted bytes. An invalid or odd-length
// notation fails with ErrorInvalidHex carrying the offending offset in the
// normalized digit stream.
//
// Without hexMode, text is UTF-8 encoded, optionally surrounded by prefix
// and suffix after escape resolution.
func Format(text string, hexMode bool, usePrefix, useSuffix bool, prefix, suffix string) ([]byte, liberr.Error) {
	if hexMode {
		return formatHex(text)
	}

	var b strings.Builder

	if usePrefix && prefix != "" {
		b.WriteString(Unescape(prefix))
	}

	b.WriteString(text)

	if useSuffix && suffix != "" {
		b.WriteString(Unescape(suffix))
	}

	return []byte(b.String()), nil
}

// Unescape resolves the escape sequences \r, \n, \t, \0 and \\ of a prefix
// or suffix notation to their byte values.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}

		i++
		switch s[i] {
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// HexString returns the canonical hex notation of the given bytes: uppercase
// pairs separated by single spaces. Format round-trips this notation back to
// the original bytes.
func HexString(p []byte) string {
	if len(p) == 0 {
		return ""
	}

	const digits = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(p) * 3)

	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(digits[c>>4])
		b.WriteByte(digits[c&0x0F])
	}

	return b.String()
}

func formatHex(text string) ([]byte, liberr.Error) {
	var b strings.Builder
	b.Grow(len(text))

	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	}) {
		if len(tok) > 1 && (tok[:2] == "0x" || tok[:2] == "0X") {
			tok = tok[2:]
		}

		b.WriteString(tok)
	}

	s := b.String()

	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return nil, ErrorInvalidHex.Error(liberr.Newf(ErrorInvalidHex.Uint16(), "invalid hex digit at offset %d", i))
		}
	}

	if len(s)%2 != 0 {
		return nil, ErrorInvalidHex.Error(liberr.Newf(ErrorInvalidHex.Uint16(), "odd hex length at offset %d", len(s)-1))
	}

	if s == "" {
		return []byte{}, nil
	}

	res, err := enchex.New().Decode([]byte(s))
	if err != nil {
		return nil, ErrorInvalidHex.Error(err)
	}

	return res, nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
