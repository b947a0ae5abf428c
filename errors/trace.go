/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

var filterPkg = path.Dir(reflect.TypeOf(ers{}).PkgPath())

func getNilFrame() runtime.Frame {
	return runtime.Frame{Function: "", File: "", Line: 0}
}

// getFrame returns the first caller frame outside this package.
func getFrame() runtime.Frame {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)

	if n < 1 {
		return getNilFrame()
	}

	frames := runtime.CallersFrames(pcs[:n])

	for {
		f, more := frames.Next()

		if !strings.HasPrefix(f.Function, filterPkg+"/errors.") && !strings.HasPrefix(f.Function, "runtime.") {
			return f
		}

		if !more {
			return getNilFrame()
		}
	}
}

// getFrameVendor returns the caller frames outside the standard runtime,
// used to render the origin of a recovered panic.
func getFrameVendor() []runtime.Frame {
	var res []runtime.Frame

	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)

	if n < 1 {
		return res
	}

	frames := runtime.CallersFrames(pcs[:n])

	for {
		f, more := frames.Next()

		if !strings.HasPrefix(f.Function, "runtime.") && f.Function != "" {
			res = append(res, f)
		}

		if !more {
			return res
		}
	}
}

// GetTrace returns the file:line notation of the captured frame.
func (e *ers) GetTrace() string {
	if e.t.File == "" {
		return ""
	}

	return fmt.Sprintf("%s:%d", path.Base(e.t.File), e.t.Line)
}
