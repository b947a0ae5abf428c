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

package macro_test

import (
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libmac "github.com/jincoder/serialtool/macro"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Run fault isolation", func() {
	It("should capture a run panic and resolve the run to failed", func() {
		bus := libbus.New()
		flt := errhdl.New(nil)

		// a nil controller makes the first step dereference nil, the
		// kind of programming fault the sink must isolate
		mac := libmac.New(nil, bus, nil, flt)
		rec := newRecorder(bus, "macro.finished")

		rows := []libmac.Row{{Index: 0, Step: libmac.Step{Selected: true, Command: "X"}}}
		_, err := mac.Run(rows, libmac.Options{})
		Expect(err).To(BeNil())

		Eventually(mac.Done(), "2s").Should(BeClosed())
		Expect(mac.State()).To(Equal(libmac.StateFailed))

		Eventually(func() int {
			return len(flt.Errors())
		}, "2s", "10ms").Should(Equal(1))

		Expect(rec.count("macro.finished")).To(Equal(1))
		fin := rec.payloads("macro.finished")[0].(libmac.EventFinished)
		Expect(fin.Success).To(BeFalse())
	})
})
