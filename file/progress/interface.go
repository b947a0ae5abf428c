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

// Package progress instruments file I/O with progress callbacks.
//
// A Progress wraps one opened file; every read or write reports its byte
// count to the registered increment function, EOF fires the EOF
// function, and Reset announces a new expected total. The file transfer
// engine streams sources through it and the bandwidth package throttles
// on the increments.
package progress

import (
	"os"
)

// FctIncrement receives the byte count of one read or write.
type FctIncrement func(size int64)

// FctReset receives the new expected total and the current position.
type FctReset func(size, current int64)

// FctEOF fires once when the end of the file is reached.
type FctEOF func()

// Progress is an instrumented file.
type Progress interface {
	// Read, Write and Seek behave like the underlying os.File, reporting
	// progress to the registered callbacks.
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Seek(offset int64, whence int) (int64, error)

	// Close closes the underlying file. Close is idempotent.
	Close() error

	// Path returns the opened file path.
	Path() string

	// Stat returns the file information.
	Stat() (os.FileInfo, error)

	// SizeBOF returns the byte count before the current position.
	SizeBOF() (int64, error)

	// SizeEOF returns the byte count from the current position to the
	// end of the file.
	SizeEOF() (int64, error)

	// Truncate cuts the file at the given size.
	Truncate(size int64) error

	// Sync flushes the file to storage.
	Sync() error

	// RegisterFctIncrement installs the per-operation byte callback.
	RegisterFctIncrement(fct FctIncrement)

	// RegisterFctReset installs the reset callback.
	RegisterFctReset(fct FctReset)

	// RegisterFctEOF installs the end-of-file callback.
	RegisterFctEOF(fct FctEOF)

	// Reset announces a new expected total through the reset callback.
	Reset(max int64)
}

// New opens the file with the given flags and permission and returns it
// instrumented.
func New(name string, flags int, perm os.FileMode) (Progress, error) {
	f, err := os.OpenFile(name, flags, perm)
	if err != nil {
		return nil, err
	}

	return &prg{
		f: f,
		n: name,
	}, nil
}
