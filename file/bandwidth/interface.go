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

// Package bandwidth caps the byte rate of progress-instrumented I/O.
//
// A BandWidth hooks the increment callback of a progress file and sleeps
// whenever the observed rate exceeds the configured bytes per second, so
// a file transfer can be held below a line rate without touching the
// transfer loop itself.
package bandwidth

import (
	libfpg "github.com/jincoder/serialtool/file/progress"
	libsiz "github.com/jincoder/serialtool/size"
)

// BandWidth throttles progress-instrumented I/O to a byte rate.
type BandWidth interface {
	// RegisterIncrement hooks the progress increment callback, chaining
	// the optional fi after the throttle.
	RegisterIncrement(fpg libfpg.Progress, fi libfpg.FctIncrement)

	// RegisterReset hooks the progress reset callback, chaining the
	// optional fr after the throttle reset.
	RegisterReset(fpg libfpg.Progress, fr libfpg.FctReset)
}

// New returns a BandWidth limited to the given bytes per second. A zero
// limit never sleeps.
func New(bytesBySecond libsiz.Size) BandWidth {
	return &bw{
		l: bytesBySecond,
	}
}
