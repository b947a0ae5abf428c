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

// Package expect accumulates response text and matches it against literal
// or regex patterns, with bounded memory.
//
// Macro steps awaiting a device response may run indefinitely: the matcher
// caps its buffer and discards the oldest text first, preserving the most
// recent window. Patterns wrapped in slashes ("/.../") are regular
// expressions, compiled once and kept in a cache; anything else is a
// case-sensitive substring.
package expect

import (
	"regexp"

	libatm "github.com/jincoder/serialtool/atomic"
	libsiz "github.com/jincoder/serialtool/size"
)

// DefaultCapacity is the buffer cap used when the caller passes none.
const DefaultCapacity = libsiz.SizeMega

// Matcher is an accumulating text buffer with literal-or-regex matching.
type Matcher interface {
	// Append adds response text to the buffer. When the cap is exceeded the
	// oldest text is discarded to fit.
	Append(text string)

	// Match reports whether the buffered text matches the pattern. A
	// pattern wrapped in slashes ("/OK|ERROR/") is applied as a regular
	// expression over the whole buffer; any other pattern is a substring
	// containment check. Matching is case-sensitive; callers lowercase
	// both sides if they want otherwise. An invalid regex never matches.
	Match(pattern string) bool

	// Len returns the buffered text length in bytes.
	Len() int

	// String returns the buffered text window.
	String() string

	// Reset clears the buffer.
	Reset()
}

// New returns a Matcher whose buffer holds at most max bytes. A zero or
// negative max falls back to DefaultCapacity.
func New(max libsiz.Size) Matcher {
	if max < 1 {
		max = DefaultCapacity
	}

	return &mtc{
		s: max.Int(),
		c: libatm.NewMapTyped[string, *regexp.Regexp](),
	}
}
