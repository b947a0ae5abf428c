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

// Package bufferReadCloser turns a bytes.Buffer into a closable stream.
//
// Close resets the buffer and runs the optional close function, so an
// in-memory payload can stand wherever a file source is expected; the
// file transfer engine streams caller-supplied byte slices through it.
package bufferReadCloser

import (
	"bytes"
	"io"
)

// FuncClose runs after the buffer reset on Close.
type FuncClose func() error

// Buffer is a closable read/write view over a bytes.Buffer.
type Buffer interface {
	io.Reader
	io.Writer
	io.WriterTo
	io.Closer
}

// New returns a Buffer over b without a close function.
//
// Deprecated: use NewBuffer.
func New(b *bytes.Buffer) Buffer {
	return NewBuffer(b, nil)
}

// NewBuffer returns a Buffer over b, running fct on Close. A nil b
// starts from an empty buffer.
func NewBuffer(b *bytes.Buffer, fct FuncClose) Buffer {
	if b == nil {
		b = bytes.NewBuffer(nil)
	}

	return &buf{
		b: b,
		f: fct,
	}
}
