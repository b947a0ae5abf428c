/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package delim reads a stream one delimiter-bounded block at a time.
//
// Each Read call returns at most one block, delimiter included; the
// trailing data after the last delimiter comes out as a final block, and
// the call after it returns io.EOF. The
// file transfer engine streams text scripts through it so every line
// reaches the device as its own chunk.
package delim

import (
	"bufio"
	"errors"
	"io"

	libsiz "github.com/jincoder/serialtool/size"
)

// ErrInstance is returned by operations on a closed BufferDelim.
var ErrInstance = errors.New("invalid instance")

// BufferDelim is a delimiter-bounded reader over one input stream.
type BufferDelim interface {
	io.ReadCloser

	// Delim returns the configured delimiter rune.
	Delim() rune

	// ReadBytes returns the next block up to and including the
	// delimiter. The trailing partial block is returned with io.EOF.
	ReadBytes() ([]byte, error)
}

// New returns a BufferDelim reading from r with the given delimiter. A
// positive buffer size overrides the default bufio size. Closing the
// BufferDelim closes r.
func New(r io.ReadCloser, delim rune, sizeBufferRead libsiz.Size) BufferDelim {
	var b *bufio.Reader

	if sizeBufferRead > 0 {
		b = bufio.NewReaderSize(r, sizeBufferRead.Int())
	} else {
		b = bufio.NewReader(r)
	}

	return &dlm{
		i: r,
		b: b,
		r: byte(delim),
	}
}
