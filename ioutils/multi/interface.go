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

// Package multi fans one write out to several destinations.
//
// The capture logger writes every record through a Multi so the capture
// file and any live mirrors see the same stream. With no destination
// registered, writes fall through to io.Discard.
package multi

import "io"

// Multi is a concurrent-safe one-to-many writer.
type Multi interface {
	io.Writer
	io.StringWriter

	// AddWriter registers destinations; nil writers are skipped.
	AddWriter(w ...io.Writer)

	// Clean removes every registered destination; subsequent writes are
	// discarded until AddWriter is called again.
	Clean()

	// Writer returns the current fan-out as one io.Writer.
	Writer() io.Writer
}

// New returns a Multi with no destination.
func New() Multi {
	return &mlt{}
}
